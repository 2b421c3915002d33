// Package metrics calcula as métricas financeiras (receita, CMV, lucros, margens e ROAS)
// a partir dos registros de vendas, mídia, produtos e câmbio já carregados em memória.
//
// Todas as funções são puras: não fazem I/O, não guardam estado e nunca retornam erro.
// Ausência de dados vira zero; câmbio ausente vira 1 (sinalizado em RateMissing).
package metrics

import "github.com/vfg2006/margin-dashboard-api/internal/domain"

// fallbackRate é usado quando não existe câmbio para o país e mês
const fallbackRate = 1.0

// ResolveRate retorna quantas unidades da moeda local equivalem a 1 EUR
func ResolveRate(countryID, month string, rates []domain.ExchangeRate, currencyCode string) float64 {
	rate, _ := LookupRate(countryID, month, rates, currencyCode)
	return rate
}

// LookupRate funciona como ResolveRate, mas informa se o câmbio foi encontrado.
// Para EUR o câmbio é sempre considerado encontrado.
func LookupRate(countryID, month string, rates []domain.ExchangeRate, currencyCode string) (float64, bool) {
	if currencyCode == domain.EUR {
		return 1, true
	}

	for _, r := range rates {
		if r.CountryID == countryID && r.Month == month {
			return r.RateToEUR, true
		}
	}

	return fallbackRate, false
}
