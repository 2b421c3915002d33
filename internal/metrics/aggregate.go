package metrics

import (
	"sort"

	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

// totals acumula valores absolutos; margens e ROAS são sempre recalculados
// a partir das somas, nunca pela média dos percentuais
type totals struct {
	revenueEUR    float64
	units         int
	cogsEUR       float64
	mediaSpendEUR float64
}

func (t totals) grossProfit() float64 { return t.revenueEUR - t.cogsEUR }
func (t totals) netProfit() float64   { return t.grossProfit() - t.mediaSpendEUR }

// AggregateCountry soma as métricas mensais de um país.
// O ID do país vem do primeiro registro; lista vazia resulta em ID "".
func AggregateCountry(months []domain.MonthlyMetrics, countryName, currencyCode string) domain.CountryMetrics {
	var t totals
	missing := make([]string, 0)

	for _, m := range months {
		t.revenueEUR += m.RevenueEUR
		t.units += m.Units
		t.cogsEUR += m.COGSEUR
		t.mediaSpendEUR += m.MediaSpendEUR

		if m.RateMissing {
			missing = append(missing, m.Month)
		}
	}
	sort.Strings(missing)

	countryID := ""
	if len(months) > 0 {
		countryID = months[0].CountryID
	}

	c := domain.CountryMetrics{
		CountryID:      countryID,
		CountryName:    countryName,
		CurrencyCode:   currencyCode,
		RevenueEUR:     t.revenueEUR,
		Units:          t.units,
		COGSEUR:        t.cogsEUR,
		MediaSpendEUR:  t.mediaSpendEUR,
		GrossProfitEUR: t.grossProfit(),
		NetProfitEUR:   t.netProfit(),
		GrossMarginPct: marginPct(t.grossProfit(), t.revenueEUR),
		NetMarginPct:   marginPct(t.netProfit(), t.revenueEUR),
		ROAS:           roas(t.revenueEUR, t.mediaSpendEUR),
	}
	if len(missing) > 0 {
		c.MissingRateMonths = missing
	}

	return c
}

// Consolidate soma as métricas de todos os países em um único resumo
func Consolidate(countries []domain.CountryMetrics) domain.ConsolidatedMetrics {
	var t totals
	missing := 0

	for _, c := range countries {
		t.revenueEUR += c.RevenueEUR
		t.units += c.Units
		t.cogsEUR += c.COGSEUR
		t.mediaSpendEUR += c.MediaSpendEUR

		if len(c.MissingRateMonths) > 0 {
			missing++
		}
	}

	return domain.ConsolidatedMetrics{
		RevenueEUR:            t.revenueEUR,
		Units:                 t.units,
		COGSEUR:               t.cogsEUR,
		MediaSpendEUR:         t.mediaSpendEUR,
		GrossProfitEUR:        t.grossProfit(),
		NetProfitEUR:          t.netProfit(),
		GrossMarginPct:        marginPct(t.grossProfit(), t.revenueEUR),
		NetMarginPct:          marginPct(t.netProfit(), t.revenueEUR),
		ROAS:                  roas(t.revenueEUR, t.mediaSpendEUR),
		CountriesMissingRates: missing,
	}
}
