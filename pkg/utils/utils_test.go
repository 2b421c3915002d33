package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	assert.Len(t, first, idLength)
	assert.NotEqual(t, first, second)
}

func TestPrettyJson(t *testing.T) {
	out, err := PrettyJson(map[string]int{"units": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"units\": 3\n}", out)

	out, err = PrettyJson([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\": 1\n}", out)

	_, err = PrettyJson([]byte(`{`))
	assert.Error(t, err)
}
