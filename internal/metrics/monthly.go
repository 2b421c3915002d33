package metrics

import "github.com/vfg2006/margin-dashboard-api/internal/domain"

// Dataset reúne os registros brutos usados no cálculo
type Dataset struct {
	Sales       []domain.Sale
	Products    []domain.Product
	Allocations []domain.MediaSpendProduct
	MediaSpends []domain.MediaSpend
	Rates       []domain.ExchangeRate
}

// monthSlice são os registros de um país em um mês
type monthSlice struct {
	sales       []domain.Sale
	spends      []domain.MediaSpend
	allocations []domain.MediaSpendProduct
	divisor     float64
	rateFound   bool
}

func sliceMonth(data Dataset, currencyCode, countryID, month string) monthSlice {
	s := monthSlice{}

	for _, sale := range data.Sales {
		if sale.CountryID == countryID && sale.Month == month {
			s.sales = append(s.sales, sale)
		}
	}

	spendIDs := make(map[string]struct{})
	for _, spend := range data.MediaSpends {
		if spend.CountryID == countryID && spend.Month == month {
			s.spends = append(s.spends, spend)
			spendIDs[spend.ID] = struct{}{}
		}
	}

	// Alocações não têm país nem mês: filtra pelo investimento de origem
	for _, a := range data.Allocations {
		if _, ok := spendIDs[a.MediaSpendID]; ok {
			s.allocations = append(s.allocations, a)
		}
	}

	s.divisor, s.rateFound = LookupRate(countryID, month, data.Rates, currencyCode)

	return s
}

func productIndex(products []domain.Product) map[string]domain.Product {
	index := make(map[string]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// CalculateMonthlyMetrics calcula as métricas de um país em um mês.
// Sem registros para o par (país, mês) o resultado é todo zerado.
func CalculateMonthlyMetrics(data Dataset, currencyCode, countryID, month string) domain.MonthlyMetrics {
	s := sliceMonth(data, currencyCode, countryID, month)
	products := productIndex(data.Products)

	m := domain.MonthlyMetrics{
		CountryID: countryID,
		Month:     month,
	}

	// Sem registros não há valor a converter, logo não falta câmbio
	m.RateMissing = !s.rateFound && (len(s.sales) > 0 || len(s.spends) > 0)

	for _, sale := range s.sales {
		m.RevenueLocal += sale.RevenueLocal
		m.Units += sale.Units

		// Produto removido não contribui com custo
		if p, ok := products[sale.ProductID]; ok {
			m.COGSEUR += float64(sale.Units) * p.COGSEUR
		}
	}

	// O total de mídia vem dos investimentos, não das alocações por produto
	for _, spend := range s.spends {
		m.MediaSpendLocal += spend.AmountLocal
	}

	m.RevenueEUR = m.RevenueLocal / s.divisor
	m.MediaSpendEUR = m.MediaSpendLocal / s.divisor
	m.GrossProfitEUR = m.RevenueEUR - m.COGSEUR
	m.NetProfitEUR = m.GrossProfitEUR - m.MediaSpendEUR
	m.GrossMarginPct = marginPct(m.GrossProfitEUR, m.RevenueEUR)
	m.NetMarginPct = marginPct(m.NetProfitEUR, m.RevenueEUR)
	m.ROAS = roas(m.RevenueEUR, m.MediaSpendEUR)

	return m
}

func marginPct(profit, revenue float64) float64 {
	if revenue > 0 {
		return (profit / revenue) * 100
	}
	return 0
}

func roas(revenue, spend float64) float64 {
	if spend > 0 {
		return revenue / spend
	}
	return 0
}
