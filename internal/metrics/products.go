package metrics

import (
	"sort"

	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

// ProductBreakdown detalha as métricas por produto de um país em um mês.
// A mídia atribuída a cada produto vem das alocações do mês; vendas e alocações
// de produtos que não existem mais aparecem com nome vazio e custo zero.
func ProductBreakdown(data Dataset, currencyCode, countryID, month string) []domain.ProductMetrics {
	s := sliceMonth(data, currencyCode, countryID, month)
	products := productIndex(data.Products)

	byProduct := make(map[string]*domain.ProductMetrics)
	get := func(productID string) *domain.ProductMetrics {
		pm, ok := byProduct[productID]
		if !ok {
			pm = &domain.ProductMetrics{ProductID: productID}
			if p, found := products[productID]; found {
				pm.ProductName = p.Name
			}
			byProduct[productID] = pm
		}
		return pm
	}

	for _, sale := range s.sales {
		pm := get(sale.ProductID)
		pm.Units += sale.Units
		pm.RevenueLocal += sale.RevenueLocal
		if p, ok := products[sale.ProductID]; ok {
			pm.COGSEUR += float64(sale.Units) * p.COGSEUR
		}
	}

	for _, a := range s.allocations {
		get(a.ProductID).MediaSpendLocal += a.AmountLocal
	}

	result := make([]domain.ProductMetrics, 0, len(byProduct))
	for _, pm := range byProduct {
		pm.RevenueEUR = pm.RevenueLocal / s.divisor
		pm.MediaSpendEUR = pm.MediaSpendLocal / s.divisor
		pm.GrossProfitEUR = pm.RevenueEUR - pm.COGSEUR
		pm.NetProfitEUR = pm.GrossProfitEUR - pm.MediaSpendEUR
		pm.GrossMarginPct = marginPct(pm.GrossProfitEUR, pm.RevenueEUR)
		pm.NetMarginPct = marginPct(pm.NetProfitEUR, pm.RevenueEUR)
		pm.ROAS = roas(pm.RevenueEUR, pm.MediaSpendEUR)
		result = append(result, *pm)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].NetProfitEUR != result[j].NetProfitEUR {
			return result[i].NetProfitEUR > result[j].NetProfitEUR
		}
		return result[i].ProductID < result[j].ProductID
	})

	return result
}
