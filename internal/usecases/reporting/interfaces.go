package reporting

import (
	"context"

	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type Reporter interface {
	GetReport(ctx context.Context, tenantID string, filters *domain.ReportFilters) (*domain.MetricsReport, error)
	GetAvailableMonths(ctx context.Context, tenantID string) ([]string, error)
	GetProductBreakdown(ctx context.Context, tenantID, countryID, month string) (*ProductBreakdown, error)
}

// SnapshotLoader entrega os registros brutos de um tenant para o cálculo
type SnapshotLoader interface {
	Load(ctx context.Context, tenantID string, filter *domain.RecordFilter) (*Snapshot, error)
}
