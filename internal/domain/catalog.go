// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// EUR é a moeda de referência de todas as métricas consolidadas
const EUR = "EUR"

// SupportedCurrencies lista as moedas aceitas no cadastro de países
var SupportedCurrencies = []string{EUR, "SEK", "NOK", "DKK", "PLN", "CZK", "HUF", "CHF", "GBP", "RON"}

// IsSupportedCurrency verifica se a moeda está entre as suportadas
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

type Country struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	CurrencyCode string `json:"currency_code"`
}

// Product representa um produto com custo fixo em EUR, independente do país de venda
type Product struct {
	ID       string  `json:"id"`
	TenantID string  `json:"tenant_id"`
	Name     string  `json:"name"`
	SKU      *string `json:"sku"`
	COGSEUR  float64 `json:"cogs_eur"`
}

type SalesChannel struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
}
