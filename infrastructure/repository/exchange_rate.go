package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/pkg/utils"
)

type ExchangeRateRepository interface {
	ListRates(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.ExchangeRate, error)
	SaveOrUpdate(ctx context.Context, rate *domain.ExchangeRate) error
	ListAllPeriods(ctx context.Context, tenantID string) ([]string, error)
}

type exchangeRateRepository struct {
	conn postgres.Queryer
}

func NewExchangeRateRepository(conn *postgres.Connection) ExchangeRateRepository {
	return &exchangeRateRepository{
		conn: conn,
	}
}

func (r *exchangeRateRepository) ListRates(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.ExchangeRate, error) {
	builder := psql.
		Select("er.id", "er.tenant_id", "er.country_id", "er.month", "er.rate_to_eur", "er.source", "er.created_at", "er.updated_at").
		From(exchangeRatesTable + " er")

	query, args, err := applyRecordFilter(builder, "er", tenantID, filter).
		OrderBy("er.month ASC", "er.country_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar taxas de câmbio", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0)
	for rows.Next() {
		var (
			rate  domain.ExchangeRate
			month time.Time
		)
		if err := rows.Scan(
			&rate.ID,
			&rate.TenantID,
			&rate.CountryID,
			&month,
			&rate.RateToEUR,
			&rate.Source,
			&rate.CreatedAt,
			&rate.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear taxa de câmbio: %w", err)
		}
		rate.Month = monthString(month)
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return rates, nil
}

// SaveOrUpdate grava a taxa do mês; já existindo uma para o país no mês, a taxa é substituída
func (r *exchangeRateRepository) SaveOrUpdate(ctx context.Context, rate *domain.ExchangeRate) error {
	if rate.ID == "" {
		rate.ID = utils.GenerateID()
	}

	query, args, err := psql.
		Insert(exchangeRatesTable).
		Columns("id", "tenant_id", "country_id", "month", "rate_to_eur", "source").
		Values(rate.ID, rate.TenantID, rate.CountryID, rate.Month, rate.RateToEUR, rate.Source).
		Suffix(`
			ON CONFLICT (country_id, month) DO UPDATE SET
				rate_to_eur = EXCLUDED.rate_to_eur,
				source = EXCLUDED.source,
				updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return dbError("salvar taxa de câmbio", err)
	}

	return nil
}

// ListAllPeriods retorna os meses distintos com taxa cadastrada, em ordem crescente
func (r *exchangeRateRepository) ListAllPeriods(ctx context.Context, tenantID string) ([]string, error) {
	query, args, err := psql.
		Select("DISTINCT month").
		From(exchangeRatesTable).
		Where("tenant_id = ?", tenantID).
		OrderBy("month ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar períodos de câmbio", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var month time.Time
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, monthString(month))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}
