package domain

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01-02"

// ExchangeRate guarda quantas unidades da moeda local equivalem a 1 EUR.
// Único por (país, mês).
type ExchangeRate struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	CountryID string    `json:"country_id"`
	Month     string    `json:"month"` // Formato YYYY-MM-01
	RateToEUR float64   `json:"rate_to_eur"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeMonth trunca a data para o primeiro dia do mês no formato YYYY-MM-01
func NormalizeMonth(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

// ParseMonth aceita YYYY-MM ou YYYY-MM-DD e devolve o mês normalizado
func ParseMonth(value string) (string, error) {
	for _, layout := range []string{"2006-01", monthLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return NormalizeMonth(t), nil
		}
	}
	return "", fmt.Errorf("mês inválido %q: use YYYY-MM ou YYYY-MM-DD", value)
}

// MonthToTime converte um mês normalizado de volta para time.Time
func MonthToTime(month string) (time.Time, error) {
	return time.Parse(monthLayout, month)
}
