// Package repository implementa o acesso ao Postgres com squirrel
package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

const (
	countriesTable          = "countries"
	productsTable           = "products"
	salesChannelsTable      = "sales_channels"
	salesTable              = "sales"
	mediaSpendsTable        = "media_spends"
	mediaSpendProductsTable = "media_spend_products"
	exchangeRatesTable      = "exchange_rates"
	usersTable              = "users"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// applyRecordFilter restringe por tenant, intervalo de meses e países usando o alias da tabela
func applyRecordFilter(b squirrel.SelectBuilder, alias, tenantID string, filter *domain.RecordFilter) squirrel.SelectBuilder {
	b = b.Where(squirrel.Eq{alias + ".tenant_id": tenantID})
	if filter == nil {
		return b
	}

	if filter.StartMonth != nil {
		b = b.Where(squirrel.GtOrEq{alias + ".month": *filter.StartMonth})
	}
	if filter.EndMonth != nil {
		b = b.Where(squirrel.LtOrEq{alias + ".month": *filter.EndMonth})
	}
	if len(filter.CountryIDs) > 0 {
		b = b.Where(squirrel.Eq{alias + ".country_id": filter.CountryIDs})
	}

	return b
}

func monthString(t time.Time) string {
	return domain.NormalizeMonth(t)
}

func dbError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados ao %s: %w (código: %s)", op, pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao %s: %w", op, err)
}
