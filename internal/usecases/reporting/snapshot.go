package reporting

import (
	"context"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot é o conjunto de registros de um tenant num recorte de meses e países
type Snapshot struct {
	Countries   []domain.Country           `json:"countries"`
	Products    []domain.Product           `json:"products"`
	Sales       []domain.Sale              `json:"sales"`
	MediaSpends []domain.MediaSpend        `json:"media_spends"`
	Allocations []domain.MediaSpendProduct `json:"allocations"`
	Rates       []domain.ExchangeRate      `json:"exchange_rates"`
}

func (s *Snapshot) Dataset() metrics.Dataset {
	return metrics.Dataset{
		Sales:       s.Sales,
		Products:    s.Products,
		Allocations: s.Allocations,
		MediaSpends: s.MediaSpends,
		Rates:       s.Rates,
	}
}

// Filter aplica intervalo de meses e países aos registros; países e produtos ficam intactos
func (s *Snapshot) Filter(filter *domain.RecordFilter) *Snapshot {
	if filter == nil {
		return s
	}

	keep := func(countryID, month string) bool {
		if filter.StartMonth != nil && month < *filter.StartMonth {
			return false
		}
		if filter.EndMonth != nil && month > *filter.EndMonth {
			return false
		}
		if len(filter.CountryIDs) == 0 {
			return true
		}
		for _, id := range filter.CountryIDs {
			if id == countryID {
				return true
			}
		}
		return false
	}

	out := &Snapshot{
		Countries: s.Countries,
		Products:  s.Products,
	}

	for _, sale := range s.Sales {
		if keep(sale.CountryID, sale.Month) {
			out.Sales = append(out.Sales, sale)
		}
	}

	spendIDs := make(map[string]struct{})
	for _, spend := range s.MediaSpends {
		if keep(spend.CountryID, spend.Month) {
			out.MediaSpends = append(out.MediaSpends, spend)
			spendIDs[spend.ID] = struct{}{}
		}
	}

	for _, a := range s.Allocations {
		if _, ok := spendIDs[a.MediaSpendID]; ok {
			out.Allocations = append(out.Allocations, a)
		}
	}

	for _, rate := range s.Rates {
		if keep(rate.CountryID, rate.Month) {
			out.Rates = append(out.Rates, rate)
		}
	}

	return out
}

// normalizeMonths aceita YYYY-MM ou data completa nos arquivos e guarda sempre YYYY-MM-01
func (s *Snapshot) normalizeMonths() error {
	for i := range s.Sales {
		month, err := domain.ParseMonth(s.Sales[i].Month)
		if err != nil {
			return errors.Wrapf(err, "venda %s", s.Sales[i].ID)
		}
		s.Sales[i].Month = month
	}

	for i := range s.MediaSpends {
		month, err := domain.ParseMonth(s.MediaSpends[i].Month)
		if err != nil {
			return errors.Wrapf(err, "investimento %s", s.MediaSpends[i].ID)
		}
		s.MediaSpends[i].Month = month
	}

	for i := range s.Rates {
		month, err := domain.ParseMonth(s.Rates[i].Month)
		if err != nil {
			return errors.Wrapf(err, "taxa de câmbio %s", s.Rates[i].ID)
		}
		s.Rates[i].Month = month
	}

	return nil
}

// StaticLoader serve um snapshot já carregado em memória, ignorando o tenant
type StaticLoader struct {
	snapshot *Snapshot
}

func NewStaticLoader(snapshot *Snapshot) *StaticLoader {
	return &StaticLoader{snapshot: snapshot}
}

func (l *StaticLoader) Load(_ context.Context, _ string, filter *domain.RecordFilter) (*Snapshot, error) {
	return l.snapshot.Filter(filter), nil
}

// LoadSnapshotFile lê um snapshot em JSON do disco
func LoadSnapshotFile(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler arquivo de snapshot")
	}

	var snapshot Snapshot
	if err := json.Unmarshal(content, &snapshot); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar snapshot")
	}

	if err := snapshot.normalizeMonths(); err != nil {
		return nil, errors.Wrap(err, "mês inválido no snapshot")
	}

	return &snapshot, nil
}
