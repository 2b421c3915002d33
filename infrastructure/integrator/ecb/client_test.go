package ecb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
)

const sekMarch = `{
  "dataSets": [{
    "series": {
      "0:0:0:0:0": {
        "observations": {"0": [11.2743, 0, 0]}
      }
    }
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ECBClient, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.ECB{BaseURL: server.URL + "/", TimeoutSeconds: 2, CacheTTL: time.Hour})
	return client, &calls
}

func TestGetMonthlyRate(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/M.SEK.EUR.SP00.A", r.URL.Path)
		assert.Equal(t, "2024-03", r.URL.Query().Get("startPeriod"))
		assert.Equal(t, "2024-03", r.URL.Query().Get("endPeriod"))
		assert.Equal(t, "jsondata", r.URL.Query().Get("format"))
		w.Write([]byte(sekMarch))
	})

	rate, err := client.GetMonthlyRate(context.Background(), "sek", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 11.2743, rate)

	// Segunda chamada vem do cache
	rate, err = client.GetMonthlyRate(context.Background(), "SEK", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 11.2743, rate)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestGetMonthlyRate_EURDoesNotCallAPI(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("não deveria consultar o BCE para EUR")
	})

	rate, err := client.GetMonthlyRate(context.Background(), "EUR", "2024-03-01")

	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestGetMonthlyRate_NotPublished(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "Corpo vazio",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name: "Sem observações",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"dataSets":[{"series":{}}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			_, err := client.GetMonthlyRate(context.Background(), "SEK", "2024-03-01")

			assert.ErrorIs(t, err, ErrRateNotPublished)
		})
	}
}

func TestGetMonthlyRate_Errors(t *testing.T) {
	t.Run("Status inesperado", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.GetMonthlyRate(context.Background(), "NOK", "2024-03-01")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRateNotPublished)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("JSON inválido", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"dataSets":`))
		})

		_, err := client.GetMonthlyRate(context.Background(), "NOK", "2024-03-01")

		assert.Error(t, err)
	})

	t.Run("Mês inválido", func(t *testing.T) {
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.GetMonthlyRate(context.Background(), "NOK", "março")

		assert.Error(t, err)
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})
}
