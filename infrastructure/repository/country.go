package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type CountryRepository interface {
	ListCountries(ctx context.Context, tenantID string) ([]domain.Country, error)
	ListAllCountries(ctx context.Context) ([]domain.Country, error)
}

type countryRepository struct {
	conn postgres.Queryer
}

func NewCountryRepository(conn *postgres.Connection) CountryRepository {
	return &countryRepository{
		conn: conn,
	}
}

func (r *countryRepository) ListCountries(ctx context.Context, tenantID string) ([]domain.Country, error) {
	return r.list(ctx, &tenantID)
}

// ListAllCountries é usado pela sincronização de câmbio, que roda fora de um tenant
func (r *countryRepository) ListAllCountries(ctx context.Context) ([]domain.Country, error) {
	return r.list(ctx, nil)
}

func (r *countryRepository) list(ctx context.Context, tenantID *string) ([]domain.Country, error) {
	builder := psql.
		Select("id", "tenant_id", "name", "code", "currency_code").
		From(countriesTable).
		OrderBy("name ASC")

	if tenantID != nil {
		builder = builder.Where("tenant_id = ?", *tenantID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar países", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Code, &c.CurrencyCode); err != nil {
			return nil, fmt.Errorf("erro ao escanear país: %w", err)
		}
		countries = append(countries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return countries, nil
}
