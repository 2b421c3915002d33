// Package listing expõe os registros brutos de vendas e câmbio do tenant
package listing

import (
	"context"
	"fmt"

	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type Lister interface {
	ListSales(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.Sale, error)
	ListExchangeRates(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.ExchangeRate, error)
	ListRatePeriods(ctx context.Context, tenantID string) ([]string, error)
}

type Service struct {
	saleRepo         repository.SaleRepository
	exchangeRateRepo repository.ExchangeRateRepository
}

func NewService(saleRepo repository.SaleRepository, exchangeRateRepo repository.ExchangeRateRepository) *Service {
	return &Service{
		saleRepo:         saleRepo,
		exchangeRateRepo: exchangeRateRepo,
	}
}

func (s *Service) ListSales(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.Sale, error) {
	sales, err := s.saleRepo.ListSales(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	return sales, nil
}

func (s *Service) ListExchangeRates(ctx context.Context, tenantID string, filter *domain.RecordFilter) ([]domain.ExchangeRate, error) {
	rates, err := s.exchangeRateRepo.ListRates(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar taxas de câmbio: %w", err)
	}
	return rates, nil
}

// ListRatePeriods retorna os meses que já têm alguma taxa cadastrada
func (s *Service) ListRatePeriods(ctx context.Context, tenantID string) ([]string, error) {
	periods, err := s.exchangeRateRepo.ListAllPeriods(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar períodos de câmbio: %w", err)
	}
	return periods, nil
}
