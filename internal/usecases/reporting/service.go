// Package reporting monta os relatórios de margem por país e consolidados em EUR
package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/metrics"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

// ProductBreakdown é o detalhamento por produto de um país em um mês
type ProductBreakdown struct {
	CountryID    string                  `json:"country_id"`
	CountryName  string                  `json:"country_name"`
	CurrencyCode string                  `json:"currency_code"`
	Month        string                  `json:"month"`
	Totals       domain.MonthlyMetrics   `json:"totals"`
	Products     []domain.ProductMetrics `json:"products"`
}

type Service struct {
	loader            SnapshotLoader
	cache             *cache.Cache
	failOnMissingRate bool
	now               func() time.Time
}

// NewService cria o serviço; CacheTTL zero desliga o cache de relatórios
func NewService(loader SnapshotLoader, cfg config.Reports) *Service {
	s := &Service{
		loader:            loader,
		failOnMissingRate: cfg.FailOnMissingRate,
		now:               time.Now,
	}

	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return s
}

func (s *Service) GetReport(ctx context.Context, tenantID string, filters *domain.ReportFilters) (*domain.MetricsReport, error) {
	if filters != nil && filters.StartMonth != nil && filters.EndMonth != nil && *filters.StartMonth > *filters.EndMonth {
		return nil, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidRequest, "mês inicial posterior ao final")
	}

	cacheKey := tenantID + ":" + filters.CacheKey()
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			return cloneReport(cached.(*domain.MetricsReport)), nil
		}
	}

	snapshot, err := s.loader.Load(ctx, tenantID, filters.RecordFilter())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar dados do relatório")
	}

	data := snapshot.Dataset()

	months := make([]string, 0)
	for _, month := range metrics.ExtractMonths(data.Sales, data.MediaSpends) {
		if filters.InRange(month) {
			months = append(months, month)
		}
	}

	var countryIDs []string
	if filters != nil {
		countryIDs = filters.CountryIDs
	}
	countries := selectCountries(snapshot.Countries, countryIDs)

	report := &domain.MetricsReport{
		Months:    months,
		Countries: make([]domain.CountryReport, 0, len(countries)),
	}

	summaries := make([]domain.CountryMetrics, 0, len(countries))
	var missing []string

	for _, country := range countries {
		monthly := make([]domain.MonthlyMetrics, 0, len(months))
		for _, month := range months {
			monthly = append(monthly, metrics.CalculateMonthlyMetrics(data, country.CurrencyCode, country.ID, month))
		}

		summary := metrics.AggregateCountry(monthly, country.Name, country.CurrencyCode)
		summary.CountryID = country.ID

		if len(summary.MissingRateMonths) > 0 {
			missing = append(missing, fmt.Sprintf("%s (%s)", country.Name, strings.Join(summary.MissingRateMonths, ", ")))

			if !s.failOnMissingRate {
				log.ForContext(ctx).WithFields(log.Fields{
					"country_id": country.ID,
					"currency":   country.CurrencyCode,
					"months":     summary.MissingRateMonths,
				}).Warn("Câmbio ausente, valores locais usados como EUR")
			}
		}

		summaries = append(summaries, summary)
		report.Countries = append(report.Countries, domain.CountryReport{
			Summary: summary,
			Monthly: monthly,
		})
	}

	if s.failOnMissingRate && len(missing) > 0 {
		return nil, NewReportError(ErrMissingExchangeRate, apiErrors.ErrMissingExchangeRate, strings.Join(missing, "; "))
	}

	report.Consolidated = metrics.Consolidate(summaries)
	report.GeneratedAt = s.now()

	if s.cache != nil {
		s.cache.Set(cacheKey, cloneReport(report), cache.DefaultExpiration)
	}

	return report, nil
}

// GetAvailableMonths lista os meses com venda ou investimento do tenant
func (s *Service) GetAvailableMonths(ctx context.Context, tenantID string) ([]string, error) {
	snapshot, err := s.loader.Load(ctx, tenantID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar meses disponíveis")
	}

	return metrics.ExtractMonths(snapshot.Sales, snapshot.MediaSpends), nil
}

func (s *Service) GetProductBreakdown(ctx context.Context, tenantID, countryID, month string) (*ProductBreakdown, error) {
	snapshot, err := s.loader.Load(ctx, tenantID, &domain.RecordFilter{
		StartMonth: &month,
		EndMonth:   &month,
		CountryIDs: []string{countryID},
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar dados do detalhamento")
	}

	var country *domain.Country
	for i := range snapshot.Countries {
		if snapshot.Countries[i].ID == countryID {
			country = &snapshot.Countries[i]
			break
		}
	}
	if country == nil {
		return nil, NewReportError(ErrCountryNotFound, apiErrors.ErrCountryNotFound, countryID)
	}

	data := snapshot.Dataset()
	totals := metrics.CalculateMonthlyMetrics(data, country.CurrencyCode, country.ID, month)

	if totals.RateMissing && s.failOnMissingRate {
		return nil, NewReportError(ErrMissingExchangeRate, apiErrors.ErrMissingExchangeRate, fmt.Sprintf("%s (%s)", country.Name, month))
	}

	return &ProductBreakdown{
		CountryID:    country.ID,
		CountryName:  country.Name,
		CurrencyCode: country.CurrencyCode,
		Month:        month,
		Totals:       totals,
		Products:     metrics.ProductBreakdown(data, country.CurrencyCode, country.ID, month),
	}, nil
}

// cloneReport copia o relatório para que quem o recebe não altere a entrada do cache
func cloneReport(r *domain.MetricsReport) *domain.MetricsReport {
	out := *r
	out.Months = append([]string(nil), r.Months...)
	out.Countries = make([]domain.CountryReport, len(r.Countries))
	for i, c := range r.Countries {
		c.Monthly = append([]domain.MonthlyMetrics(nil), c.Monthly...)
		if c.Summary.MissingRateMonths != nil {
			c.Summary.MissingRateMonths = append([]string(nil), c.Summary.MissingRateMonths...)
		}
		out.Countries[i] = c
	}
	return &out
}

// selectCountries filtra pelos IDs pedidos e ordena por nome
func selectCountries(all []domain.Country, ids []string) []domain.Country {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]domain.Country, 0, len(all))
	for _, c := range all {
		if len(wanted) > 0 {
			if _, ok := wanted[c.ID]; !ok {
				continue
			}
		}
		selected = append(selected, c)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Name == selected[j].Name {
			return selected[i].ID < selected[j].ID
		}
		return selected[i].Name < selected[j].Name
	})

	return selected
}
