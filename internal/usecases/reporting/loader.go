package reporting

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// RepositoryLoader monta o snapshot a partir do banco, com as consultas em paralelo
type RepositoryLoader struct {
	countryRepo      repository.CountryRepository
	productRepo      repository.ProductRepository
	saleRepo         repository.SaleRepository
	mediaSpendRepo   repository.MediaSpendRepository
	exchangeRateRepo repository.ExchangeRateRepository
}

func NewRepositoryLoader(
	countryRepo repository.CountryRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	mediaSpendRepo repository.MediaSpendRepository,
	exchangeRateRepo repository.ExchangeRateRepository,
) *RepositoryLoader {
	return &RepositoryLoader{
		countryRepo:      countryRepo,
		productRepo:      productRepo,
		saleRepo:         saleRepo,
		mediaSpendRepo:   mediaSpendRepo,
		exchangeRateRepo: exchangeRateRepo,
	}
}

func (l *RepositoryLoader) Load(ctx context.Context, tenantID string, filter *domain.RecordFilter) (*Snapshot, error) {
	snapshot := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		countries, err := l.countryRepo.ListCountries(gctx, tenantID)
		snapshot.Countries = countries
		return errors.Wrap(err, "erro ao carregar países")
	})

	g.Go(func() error {
		products, err := l.productRepo.ListProducts(gctx, tenantID)
		snapshot.Products = products
		return errors.Wrap(err, "erro ao carregar produtos")
	})

	g.Go(func() error {
		sales, err := l.saleRepo.ListSales(gctx, tenantID, filter)
		snapshot.Sales = sales
		return errors.Wrap(err, "erro ao carregar vendas")
	})

	// Alocações dependem dos IDs dos investimentos
	g.Go(func() error {
		spends, err := l.mediaSpendRepo.ListMediaSpends(gctx, tenantID, filter)
		if err != nil {
			return errors.Wrap(err, "erro ao carregar investimentos em mídia")
		}
		snapshot.MediaSpends = spends

		ids := make([]string, 0, len(spends))
		for _, spend := range spends {
			ids = append(ids, spend.ID)
		}

		allocations, err := l.mediaSpendRepo.ListAllocations(gctx, ids)
		snapshot.Allocations = allocations
		return errors.Wrap(err, "erro ao carregar alocações por produto")
	})

	g.Go(func() error {
		rates, err := l.exchangeRateRepo.ListRates(gctx, tenantID, filter)
		snapshot.Rates = rates
		return errors.Wrap(err, "erro ao carregar taxas de câmbio")
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
