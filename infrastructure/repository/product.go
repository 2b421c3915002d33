package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, tenantID string) ([]domain.Product, error)
}

type productRepository struct {
	conn postgres.Queryer
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) ListProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	query, args, err := psql.
		Select("id", "tenant_id", "name", "sku", "cogs_eur").
		From(productsTable).
		Where("tenant_id = ?", tenantID).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar produtos", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.SKU, &p.COGSEUR); err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}
