package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return New(l), buf
}

func TestLogger_WithContext(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	l, buf := newBufferLogger()
	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithTenantID(ctx, "tenant-1")

	l.WithContext(ctx).Info("mensagem")

	assert.Contains(t, buf.String(), "correlation_id="+correlationID)
	assert.Contains(t, buf.String(), "tenant_id=tenant-1")
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}

func TestLogger_DevelopmentFiltersFields(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	l, buf := newBufferLogger()
	l.WithFields(Fields{"country_id": "se", "ruido": "x", "user_id": "u1"}).Info("filtrado")

	out := buf.String()
	assert.Contains(t, out, "country_id=se")
	assert.Contains(t, out, "user_id=u1")
	assert.NotContains(t, out, "ruido")
}

func TestGetCorrelationID_Empty(t *testing.T) {
	assert.Equal(t, "", GetCorrelationID(context.Background()))
}
