package metrics

import (
	"sort"

	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

// ExtractMonths retorna os meses distintos presentes em vendas e mídia, em ordem crescente.
// Os meses estão no formato YYYY-MM-01, então a ordem lexicográfica é a cronológica.
func ExtractMonths(sales []domain.Sale, spends []domain.MediaSpend) []string {
	seen := make(map[string]struct{})
	for _, s := range sales {
		seen[s.Month] = struct{}{}
	}
	for _, s := range spends {
		seen[s.Month] = struct{}{}
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)

	return months
}
