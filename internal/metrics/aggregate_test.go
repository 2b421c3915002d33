package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

func TestAggregateCountry_RecomputesRatiosFromTotals(t *testing.T) {
	a := domain.MonthlyMetrics{
		CountryID: "se", Month: "2024-01-01",
		RevenueEUR: 1000, COGSEUR: 200, MediaSpendEUR: 100, Units: 10,
	}
	b := domain.MonthlyMetrics{
		CountryID: "se", Month: "2024-02-01",
		RevenueEUR: 100, COGSEUR: 90, MediaSpendEUR: 50, Units: 2,
	}
	a.NetMarginPct = (a.RevenueEUR - a.COGSEUR - a.MediaSpendEUR) / a.RevenueEUR * 100
	b.NetMarginPct = (b.RevenueEUR - b.COGSEUR - b.MediaSpendEUR) / b.RevenueEUR * 100

	c := AggregateCountry([]domain.MonthlyMetrics{a, b}, "Suécia", "SEK")

	expected := ((1000.0 + 100) - (200 + 90) - (100 + 50)) / (1000 + 100) * 100
	average := (a.NetMarginPct + b.NetMarginPct) / 2

	assert.Equal(t, "se", c.CountryID)
	assert.Equal(t, "Suécia", c.CountryName)
	assert.Equal(t, "SEK", c.CurrencyCode)
	assert.Equal(t, 12, c.Units)
	assert.InDelta(t, 1100, c.RevenueEUR, delta)
	assert.InDelta(t, 290, c.COGSEUR, delta)
	assert.InDelta(t, 150, c.MediaSpendEUR, delta)
	assert.InDelta(t, 810, c.GrossProfitEUR, delta)
	assert.InDelta(t, 660, c.NetProfitEUR, delta)
	assert.InDelta(t, expected, c.NetMarginPct, delta)
	assert.NotEqual(t, average, c.NetMarginPct)
	assert.InDelta(t, 810.0/1100*100, c.GrossMarginPct, delta)
	assert.InDelta(t, 1100.0/150, c.ROAS, delta)
	assert.Nil(t, c.MissingRateMonths)
}

func TestAggregateCountry_Empty(t *testing.T) {
	c := AggregateCountry(nil, "Alemanha", "EUR")

	assert.Equal(t, "", c.CountryID)
	assert.Equal(t, "Alemanha", c.CountryName)
	assert.Equal(t, 0.0, c.GrossMarginPct)
	assert.Equal(t, 0.0, c.ROAS)
}

func TestAggregateCountry_CollectsMissingRateMonths(t *testing.T) {
	months := []domain.MonthlyMetrics{
		{CountryID: "se", Month: "2024-03-01", RateMissing: true},
		{CountryID: "se", Month: "2024-02-01"},
		{CountryID: "se", Month: "2024-01-01", RateMissing: true},
	}

	c := AggregateCountry(months, "Suécia", "SEK")

	assert.Equal(t, []string{"2024-01-01", "2024-03-01"}, c.MissingRateMonths)
}

func TestConsolidate(t *testing.T) {
	countries := []domain.CountryMetrics{
		{CountryID: "de", RevenueEUR: 1000, COGSEUR: 200, MediaSpendEUR: 200, Units: 10},
		{CountryID: "se", RevenueEUR: 1000, COGSEUR: 600, MediaSpendEUR: 0, Units: 4, MissingRateMonths: []string{"2024-01-01"}},
	}

	c := Consolidate(countries)

	assert.InDelta(t, 2000, c.RevenueEUR, delta)
	assert.Equal(t, 14, c.Units)
	assert.InDelta(t, 800, c.COGSEUR, delta)
	assert.InDelta(t, 200, c.MediaSpendEUR, delta)
	assert.InDelta(t, 1200, c.GrossProfitEUR, delta)
	assert.InDelta(t, 1000, c.NetProfitEUR, delta)
	assert.InDelta(t, 60, c.GrossMarginPct, delta)
	assert.InDelta(t, 50, c.NetMarginPct, delta)
	assert.InDelta(t, 10, c.ROAS, delta)
	assert.Equal(t, 1, c.CountriesMissingRates)
}

func TestConsolidate_Empty(t *testing.T) {
	assert.Equal(t, domain.ConsolidatedMetrics{}, Consolidate(nil))
}
