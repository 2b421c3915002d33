package handler

import (
	"context"
	"sync"

	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
)

type fakeReporter struct {
	report        *domain.MetricsReport
	months        []string
	breakdown     *reporting.ProductBreakdown
	err           error
	lastTenant    string
	lastFilters   *domain.ReportFilters
	lastCountryID string
	lastMonth     string
}

func (f *fakeReporter) GetReport(_ context.Context, tenantID string, filters *domain.ReportFilters) (*domain.MetricsReport, error) {
	f.lastTenant = tenantID
	f.lastFilters = filters
	return f.report, f.err
}

func (f *fakeReporter) GetAvailableMonths(_ context.Context, tenantID string) ([]string, error) {
	f.lastTenant = tenantID
	return f.months, f.err
}

func (f *fakeReporter) GetProductBreakdown(_ context.Context, tenantID, countryID, month string) (*reporting.ProductBreakdown, error) {
	f.lastTenant = tenantID
	f.lastCountryID = countryID
	f.lastMonth = month
	return f.breakdown, f.err
}

type fakeLister struct {
	sales      []domain.Sale
	rates      []domain.ExchangeRate
	periods    []string
	err        error
	lastFilter *domain.RecordFilter
}

func (f *fakeLister) ListSales(_ context.Context, _ string, filter *domain.RecordFilter) ([]domain.Sale, error) {
	f.lastFilter = filter
	return f.sales, f.err
}

func (f *fakeLister) ListExchangeRates(_ context.Context, _ string, filter *domain.RecordFilter) ([]domain.ExchangeRate, error) {
	f.lastFilter = filter
	return f.rates, f.err
}

func (f *fakeLister) ListRatePeriods(_ context.Context, _ string) ([]string, error) {
	return f.periods, f.err
}

type fakeAuthenticator struct {
	token  string
	user   *domain.User
	claims *domain.Claims
	err    error
}

func (f *fakeAuthenticator) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, f.err
}

func (f *fakeAuthenticator) LoginUser(_ context.Context, _, _ string) (string, error) {
	return f.token, f.err
}

func (f *fakeAuthenticator) GetUserProfile(_ context.Context, _ string) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeAuthenticator) ValidateToken(_ string) (*domain.Claims, error) {
	return f.claims, f.err
}

func (f *fakeAuthenticator) ValidatePasswordStrength(_ string) error {
	return nil
}

type fakeCronJob struct {
	mu        sync.Mutex
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered++
}

func (f *fakeCronJob) GetStatus() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return map[string]any{"triggered": f.triggered}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(_ context.Context) error {
	return f.err
}
