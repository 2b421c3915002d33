package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type SaleRepository interface {
	ListSales(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.Sale, error)
}

type saleRepository struct {
	conn postgres.Queryer
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

var saleColumns = []string{
	"s.id", "s.tenant_id", "s.country_id", "s.product_id", "s.sales_channel_id",
	"s.month", "s.revenue_local", "s.units", "s.note",
}

var saleRelationColumns = []string{
	"c.name", "c.code", "c.currency_code",
	"p.name", "p.sku", "p.cogs_eur",
	"sc.name",
}

// ListSales lista as vendas do tenant; com WithRelations faz LEFT JOIN em país, produto e canal
func (r *saleRepository) ListSales(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.Sale, error) {
	withRelations := filter != nil && filter.WithRelations

	columns := saleColumns
	if withRelations {
		columns = append(append([]string{}, saleColumns...), saleRelationColumns...)
	}

	builder := psql.
		Select(columns...).
		From(salesTable + " s")

	if withRelations {
		builder = builder.
			LeftJoin(countriesTable + " c ON c.id = s.country_id").
			LeftJoin(productsTable + " p ON p.id = s.product_id").
			LeftJoin(salesChannelsTable + " sc ON sc.id = s.sales_channel_id")
	}

	builder = applyRecordFilter(builder, "s", tenantID, filter).
		OrderBy("s.month ASC", "s.id ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar vendas", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		var sale domain.Sale
		if withRelations {
			err = scanSaleWithRelations(rows, &sale)
		} else {
			err = scanSale(rows, &sale)
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

func scanSale(rows *sql.Rows, sale *domain.Sale) error {
	var month time.Time
	err := rows.Scan(
		&sale.ID,
		&sale.TenantID,
		&sale.CountryID,
		&sale.ProductID,
		&sale.SalesChannelID,
		&month,
		&sale.RevenueLocal,
		&sale.Units,
		&sale.Note,
	)
	if err != nil {
		return err
	}

	sale.Month = monthString(month)
	return nil
}

func scanSaleWithRelations(rows *sql.Rows, sale *domain.Sale) error {
	var (
		month                                  time.Time
		countryName, countryCode, currencyCode sql.NullString
		productName, productSKU, channelName   sql.NullString
		productCOGS                            sql.NullFloat64
	)

	err := rows.Scan(
		&sale.ID,
		&sale.TenantID,
		&sale.CountryID,
		&sale.ProductID,
		&sale.SalesChannelID,
		&month,
		&sale.RevenueLocal,
		&sale.Units,
		&sale.Note,
		&countryName,
		&countryCode,
		&currencyCode,
		&productName,
		&productSKU,
		&productCOGS,
		&channelName,
	)
	if err != nil {
		return err
	}

	sale.Month = monthString(month)

	// Linha órfã no LEFT JOIN deixa a relação nula
	if countryName.Valid {
		sale.Country = &domain.Country{
			ID:           sale.CountryID,
			TenantID:     sale.TenantID,
			Name:         countryName.String,
			Code:         countryCode.String,
			CurrencyCode: currencyCode.String,
		}
	}
	if productName.Valid {
		sale.Product = &domain.Product{
			ID:       sale.ProductID,
			TenantID: sale.TenantID,
			Name:     productName.String,
			COGSEUR:  productCOGS.Float64,
		}
		if productSKU.Valid {
			sku := productSKU.String
			sale.Product.SKU = &sku
		}
	}
	if channelName.Valid {
		sale.SalesChannel = &domain.SalesChannel{
			ID:       sale.SalesChannelID,
			TenantID: sale.TenantID,
			Name:     channelName.String,
		}
	}

	return nil
}
