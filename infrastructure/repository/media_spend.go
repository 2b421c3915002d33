package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type MediaSpendRepository interface {
	ListMediaSpends(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.MediaSpend, error)
	ListAllocations(ctx context.Context, mediaSpendIDs []string) ([]domain.MediaSpendProduct, error)
}

type mediaSpendRepository struct {
	conn postgres.Queryer
}

func NewMediaSpendRepository(conn *postgres.Connection) MediaSpendRepository {
	return &mediaSpendRepository{
		conn: conn,
	}
}

func (r *mediaSpendRepository) ListMediaSpends(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.MediaSpend, error) {
	builder := psql.
		Select(
			"ms.id", "ms.tenant_id", "ms.country_id", "ms.media_channel_id", "ms.sub_channel",
			"ms.creative_id", "ms.month", "ms.amount_local", "ms.distribute_evenly", "ms.note",
		).
		From(mediaSpendsTable + " ms")

	query, args, err := applyRecordFilter(builder, "ms", tenantID, filter).
		OrderBy("ms.month ASC", "ms.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar investimentos em mídia", err)
	}
	defer rows.Close()

	spends := make([]domain.MediaSpend, 0)
	for rows.Next() {
		var (
			spend domain.MediaSpend
			month time.Time
		)
		if err := rows.Scan(
			&spend.ID,
			&spend.TenantID,
			&spend.CountryID,
			&spend.MediaChannelID,
			&spend.SubChannel,
			&spend.CreativeID,
			&month,
			&spend.AmountLocal,
			&spend.DistributeEvenly,
			&spend.Note,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear investimento: %w", err)
		}
		spend.Month = monthString(month)
		spends = append(spends, spend)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return spends, nil
}

// ListAllocations busca as alocações por produto dos investimentos informados
func (r *mediaSpendRepository) ListAllocations(ctx context.Context, mediaSpendIDs []string) ([]domain.MediaSpendProduct, error) {
	allocations := make([]domain.MediaSpendProduct, 0)
	if len(mediaSpendIDs) == 0 {
		return allocations, nil
	}

	query, args, err := psql.
		Select("id", "media_spend_id", "product_id", "amount_local").
		From(mediaSpendProductsTable).
		Where(squirrel.Eq{"media_spend_id": mediaSpendIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar alocações", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.MediaSpendProduct
		if err := rows.Scan(&a.ID, &a.MediaSpendID, &a.ProductID, &a.AmountLocal); err != nil {
			return nil, fmt.Errorf("erro ao escanear alocação: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return allocations, nil
}
