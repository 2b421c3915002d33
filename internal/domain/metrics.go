package domain

// MonthlyMetrics são as métricas de um país em um mês
type MonthlyMetrics struct {
	CountryID       string  `json:"country_id"`
	Month           string  `json:"month"`
	RevenueLocal    float64 `json:"revenue_local"`
	RevenueEUR      float64 `json:"revenue_eur"`
	Units           int     `json:"units"`
	COGSEUR         float64 `json:"cogs_eur"`
	MediaSpendLocal float64 `json:"media_spend_local"`
	MediaSpendEUR   float64 `json:"media_spend_eur"`
	GrossProfitEUR  float64 `json:"gross_profit_eur"`
	NetProfitEUR    float64 `json:"net_profit_eur"`
	GrossMarginPct  float64 `json:"gross_margin_pct"`
	NetMarginPct    float64 `json:"net_margin_pct"`
	ROAS            float64 `json:"roas"`
	RateMissing     bool    `json:"rate_missing"` // Câmbio ausente, valores locais usados como EUR
}

// CountryMetrics soma as métricas mensais de um país
type CountryMetrics struct {
	CountryID         string   `json:"country_id"`
	CountryName       string   `json:"country_name"`
	CurrencyCode      string   `json:"currency_code"`
	RevenueEUR        float64  `json:"revenue_eur"`
	Units             int      `json:"units"`
	COGSEUR           float64  `json:"cogs_eur"`
	MediaSpendEUR     float64  `json:"media_spend_eur"`
	GrossProfitEUR    float64  `json:"gross_profit_eur"`
	NetProfitEUR      float64  `json:"net_profit_eur"`
	GrossMarginPct    float64  `json:"gross_margin_pct"`
	NetMarginPct      float64  `json:"net_margin_pct"`
	ROAS              float64  `json:"roas"`
	MissingRateMonths []string `json:"missing_rate_months,omitempty"`
}

// ConsolidatedMetrics soma as métricas de todos os países
type ConsolidatedMetrics struct {
	RevenueEUR            float64 `json:"revenue_eur"`
	Units                 int     `json:"units"`
	COGSEUR               float64 `json:"cogs_eur"`
	MediaSpendEUR         float64 `json:"media_spend_eur"`
	GrossProfitEUR        float64 `json:"gross_profit_eur"`
	NetProfitEUR          float64 `json:"net_profit_eur"`
	GrossMarginPct        float64 `json:"gross_margin_pct"`
	NetMarginPct          float64 `json:"net_margin_pct"`
	ROAS                  float64 `json:"roas"`
	CountriesMissingRates int     `json:"countries_missing_rates"`
}

// ProductMetrics detalha as métricas de um produto em um país e mês
type ProductMetrics struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Units           int     `json:"units"`
	RevenueLocal    float64 `json:"revenue_local"`
	RevenueEUR      float64 `json:"revenue_eur"`
	COGSEUR         float64 `json:"cogs_eur"`
	MediaSpendLocal float64 `json:"media_spend_local"`
	MediaSpendEUR   float64 `json:"media_spend_eur"`
	GrossProfitEUR  float64 `json:"gross_profit_eur"`
	NetProfitEUR    float64 `json:"net_profit_eur"`
	GrossMarginPct  float64 `json:"gross_margin_pct"`
	NetMarginPct    float64 `json:"net_margin_pct"`
	ROAS            float64 `json:"roas"`
}
