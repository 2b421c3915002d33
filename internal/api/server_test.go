package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/margin-dashboard-api/internal/api/handler"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
)

type stubAuthenticator struct {
	claims *domain.Claims
}

func (s stubAuthenticator) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (s stubAuthenticator) LoginUser(_ context.Context, _, _ string) (string, error) {
	return "token", nil
}

func (s stubAuthenticator) GetUserProfile(_ context.Context, _ string) (*domain.User, error) {
	return &domain.User{ID: s.claims.UserID}, nil
}

func (s stubAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	if token != "valid" {
		return nil, errors.New("token inválido")
	}
	return s.claims, nil
}

func (s stubAuthenticator) ValidatePasswordStrength(_ string) error { return nil }

type stubReporter struct{}

func (stubReporter) GetReport(_ context.Context, _ string, _ *domain.ReportFilters) (*domain.MetricsReport, error) {
	return &domain.MetricsReport{}, nil
}

func (stubReporter) GetAvailableMonths(_ context.Context, _ string) ([]string, error) {
	return []string{"2024-01-01"}, nil
}

func (stubReporter) GetProductBreakdown(_ context.Context, _, _, _ string) (*reporting.ProductBreakdown, error) {
	return &reporting.ProductBreakdown{}, nil
}

type stubPinger struct{}

func (stubPinger) Ping(_ context.Context) error { return nil }

func newTestHandler(roleID int) http.Handler {
	cfg := &config.Config{CORS: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}}}
	return NewHandler(cfg, Services{
		DB:            stubPinger{},
		Authenticator: stubAuthenticator{claims: &domain.Claims{UserID: "u1", UserRoleID: roleID, TenantID: "t1"}},
		Reporter:      stubReporter{},
		CronJobs:      handler.CronJobServices{},
	})
}

func TestNewHandler_MiddlewareChain(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		token  string
		roleID int
		status int
	}{
		{name: "healthcheck é público", method: http.MethodGet, path: "/healthcheck", status: http.StatusOK},
		{name: "sem token", method: http.MethodGet, path: "/v1/reports/months", status: http.StatusUnauthorized},
		{name: "token inválido", method: http.MethodGet, path: "/v1/reports/months", token: "bad", roleID: 3, status: http.StatusUnauthorized},
		{name: "analista lê relatórios", method: http.MethodGet, path: "/v1/reports/months", token: "valid", roleID: 3, status: http.StatusOK},
		{name: "analista não vê status do cron", method: http.MethodGet, path: "/v1/cron/status", token: "valid", roleID: 3, status: http.StatusForbidden},
		{name: "supervisor vê status do cron", method: http.MethodGet, path: "/v1/cron/status", token: "valid", roleID: 2, status: http.StatusOK},
		{name: "rota inexistente", method: http.MethodGet, path: "/v1/nada", token: "valid", roleID: 1, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			newTestHandler(tt.roleID).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestNewHandler_CorsPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/reports/metrics", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	newTestHandler(3).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
