package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
)

const delta = 1e-9

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// countingLoader conta as cargas para verificar o cache
type countingLoader struct {
	inner SnapshotLoader
	calls int
	err   error
}

func (l *countingLoader) Load(ctx context.Context, tenantID string, filter *domain.RecordFilter) (*Snapshot, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.inner.Load(ctx, tenantID, filter)
}

func strPtr(s string) *string { return &s }

func twoCountrySnapshot() *Snapshot {
	return &Snapshot{
		Countries: []domain.Country{
			{ID: "se", Name: "Sweden", CurrencyCode: "SEK"},
			{ID: "de", Name: "Germany", CurrencyCode: "EUR"},
		},
		Products: []domain.Product{
			{ID: "p1", Name: "Widget", COGSEUR: 20},
		},
		Sales: []domain.Sale{
			{ID: "s1", CountryID: "de", ProductID: "p1", Month: "2024-01-01", RevenueLocal: 1000, Units: 10},
			{ID: "s2", CountryID: "se", ProductID: "p1", Month: "2024-01-01", RevenueLocal: 11500, Units: 5},
		},
		MediaSpends: []domain.MediaSpend{
			{ID: "m1", CountryID: "de", Month: "2024-01-01", AmountLocal: 100},
			{ID: "m2", CountryID: "se", Month: "2024-01-01", AmountLocal: 1150},
		},
		Allocations: []domain.MediaSpendProduct{
			{ID: "a1", MediaSpendID: "m2", ProductID: "p1", AmountLocal: 1150},
		},
		Rates: []domain.ExchangeRate{
			{ID: "r1", CountryID: "se", Month: "2024-01-01", RateToEUR: 11.5},
		},
	}
}

func newTestService(snapshot *Snapshot, cfg config.Reports) (*Service, *countingLoader) {
	loader := &countingLoader{inner: NewStaticLoader(snapshot)}
	service := NewService(loader, cfg)
	service.now = func() time.Time { return fixedNow }
	return service, loader
}

func TestService_GetReport(t *testing.T) {
	service, _ := newTestService(twoCountrySnapshot(), config.Reports{})

	report, err := service.GetReport(context.Background(), "tenant-1", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01"}, report.Months)
	assert.Equal(t, fixedNow, report.GeneratedAt)

	require.Len(t, report.Countries, 2)
	germany, sweden := report.Countries[0], report.Countries[1]
	assert.Equal(t, "Germany", germany.Summary.CountryName, "países ordenados por nome")
	assert.Equal(t, "de", germany.Summary.CountryID)
	assert.Equal(t, 700.0, germany.Summary.NetProfitEUR)

	assert.Equal(t, "SEK", sweden.Summary.CurrencyCode)
	assert.InDelta(t, 1000, sweden.Summary.RevenueEUR, delta)
	assert.InDelta(t, 100, sweden.Summary.MediaSpendEUR, delta)
	assert.InDelta(t, 800, sweden.Summary.NetProfitEUR, delta)
	require.Len(t, sweden.Monthly, 1)
	assert.Equal(t, 11500.0, sweden.Monthly[0].RevenueLocal)

	c := report.Consolidated
	assert.InDelta(t, 2000, c.RevenueEUR, delta)
	assert.Equal(t, 15, c.Units)
	assert.InDelta(t, 300, c.COGSEUR, delta)
	assert.InDelta(t, 200, c.MediaSpendEUR, delta)
	assert.InDelta(t, 1500, c.NetProfitEUR, delta)
	assert.InDelta(t, 75, c.NetMarginPct, delta)
	assert.InDelta(t, 10, c.ROAS, delta)
	assert.Equal(t, 0, c.CountriesMissingRates)
}

func TestService_GetReport_Filters(t *testing.T) {
	snapshot := twoCountrySnapshot()
	snapshot.Sales = append(snapshot.Sales, domain.Sale{ID: "s3", CountryID: "de", ProductID: "p1", Month: "2024-02-01", RevenueLocal: 400, Units: 2})

	t.Run("Por país", func(t *testing.T) {
		service, _ := newTestService(snapshot, config.Reports{})

		report, err := service.GetReport(context.Background(), "tenant-1", &domain.ReportFilters{CountryIDs: []string{"se"}})
		require.NoError(t, err)

		require.Len(t, report.Countries, 1)
		assert.Equal(t, "se", report.Countries[0].Summary.CountryID)
		assert.Equal(t, []string{"2024-01-01"}, report.Months)
	})

	t.Run("Por intervalo de meses", func(t *testing.T) {
		service, _ := newTestService(snapshot, config.Reports{})

		report, err := service.GetReport(context.Background(), "tenant-1", &domain.ReportFilters{StartMonth: strPtr("2024-02-01")})
		require.NoError(t, err)

		assert.Equal(t, []string{"2024-02-01"}, report.Months)
		assert.Equal(t, 400.0, report.Consolidated.RevenueEUR)
		assert.Equal(t, 0.0, report.Countries[1].Summary.RevenueEUR, "Suécia sem dados no período")
	})

	t.Run("Período invertido", func(t *testing.T) {
		service, loader := newTestService(snapshot, config.Reports{})

		_, err := service.GetReport(context.Background(), "tenant-1", &domain.ReportFilters{
			StartMonth: strPtr("2024-03-01"),
			EndMonth:   strPtr("2024-01-01"),
		})

		var reportErr *ReportError
		require.ErrorAs(t, err, &reportErr)
		assert.Equal(t, apiErrors.ErrInvalidRequest, reportErr.Code)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
		assert.Equal(t, 0, loader.calls)
	})
}

func TestService_GetReport_MissingRate(t *testing.T) {
	snapshot := twoCountrySnapshot()
	snapshot.Rates = nil

	t.Run("Modo padrão usa 1 e sinaliza", func(t *testing.T) {
		service, _ := newTestService(snapshot, config.Reports{})

		report, err := service.GetReport(context.Background(), "tenant-1", nil)
		require.NoError(t, err)

		sweden := report.Countries[1].Summary
		assert.Equal(t, 11500.0, sweden.RevenueEUR)
		assert.Equal(t, []string{"2024-01-01"}, sweden.MissingRateMonths)
		assert.Nil(t, report.Countries[0].Summary.MissingRateMonths)
		assert.Equal(t, 1, report.Consolidated.CountriesMissingRates)
	})

	t.Run("Modo estrito retorna erro", func(t *testing.T) {
		service, _ := newTestService(snapshot, config.Reports{FailOnMissingRate: true})

		_, err := service.GetReport(context.Background(), "tenant-1", nil)

		var reportErr *ReportError
		require.ErrorAs(t, err, &reportErr)
		assert.Equal(t, apiErrors.ErrMissingExchangeRate, reportErr.Code)
		assert.ErrorIs(t, err, ErrMissingExchangeRate)
		assert.Contains(t, reportErr.Details, "Sweden (2024-01-01)")
	})
}

func TestService_GetReport_Cache(t *testing.T) {
	service, loader := newTestService(twoCountrySnapshot(), config.Reports{CacheTTL: time.Minute})
	ctx := context.Background()

	first, err := service.GetReport(ctx, "tenant-1", &domain.ReportFilters{CountryIDs: []string{"se", "de"}})
	require.NoError(t, err)

	// Mesma combinação em outra ordem aproveita o cache
	second, err := service.GetReport(ctx, "tenant-1", &domain.ReportFilters{CountryIDs: []string{"de", "se"}})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, loader.calls)

	// Alterar o retorno não afeta a próxima leitura do cache
	second.Months[0] = "1999-01-01"
	second.Countries[0].Monthly[0].RevenueEUR = -1
	second.Consolidated.RevenueEUR = -1
	third, err := service.GetReport(ctx, "tenant-1", &domain.ReportFilters{CountryIDs: []string{"se", "de"}})
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, 1, loader.calls)

	_, err = service.GetReport(ctx, "tenant-2", &domain.ReportFilters{CountryIDs: []string{"se", "de"}})
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls, "outro tenant não compartilha cache")
}

func TestService_GetReport_CacheDisabled(t *testing.T) {
	service, loader := newTestService(twoCountrySnapshot(), config.Reports{})

	for i := 0; i < 2; i++ {
		_, err := service.GetReport(context.Background(), "tenant-1", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, loader.calls)
}

func TestService_GetReport_LoaderError(t *testing.T) {
	dbErr := errors.New("conexão recusada")
	service := NewService(&countingLoader{err: dbErr}, config.Reports{})

	_, err := service.GetReport(context.Background(), "tenant-1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestService_GetAvailableMonths(t *testing.T) {
	snapshot := twoCountrySnapshot()
	snapshot.MediaSpends = append(snapshot.MediaSpends, domain.MediaSpend{ID: "m3", CountryID: "de", Month: "2023-12-01", AmountLocal: 10})
	service, _ := newTestService(snapshot, config.Reports{})

	months, err := service.GetAvailableMonths(context.Background(), "tenant-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12-01", "2024-01-01"}, months)
}

func TestService_GetProductBreakdown(t *testing.T) {
	service, _ := newTestService(twoCountrySnapshot(), config.Reports{})

	breakdown, err := service.GetProductBreakdown(context.Background(), "tenant-1", "se", "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, "Sweden", breakdown.CountryName)
	assert.InDelta(t, 1000, breakdown.Totals.RevenueEUR, delta)
	require.Len(t, breakdown.Products, 1)

	widget := breakdown.Products[0]
	assert.Equal(t, "Widget", widget.ProductName)
	assert.Equal(t, 5, widget.Units)
	assert.InDelta(t, 100, widget.MediaSpendEUR, delta)
	assert.InDelta(t, 800, widget.NetProfitEUR, delta)
}

func TestService_GetProductBreakdown_CountryNotFound(t *testing.T) {
	service, _ := newTestService(twoCountrySnapshot(), config.Reports{})

	_, err := service.GetProductBreakdown(context.Background(), "tenant-1", "fr", "2024-01-01")

	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, apiErrors.ErrCountryNotFound, reportErr.Code)
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestService_GetProductBreakdown_StrictMissingRate(t *testing.T) {
	snapshot := twoCountrySnapshot()
	snapshot.Rates = nil
	service, _ := newTestService(snapshot, config.Reports{FailOnMissingRate: true})

	_, err := service.GetProductBreakdown(context.Background(), "tenant-1", "se", "2024-01-01")

	assert.ErrorIs(t, err, ErrMissingExchangeRate)
}
