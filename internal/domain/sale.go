package domain

// Sale representa as vendas de um produto em um canal, agregadas por mês.
// Country, Product e SalesChannel só são preenchidos quando a consulta pediu as relações.
type Sale struct {
	ID             string  `json:"id"`
	TenantID       string  `json:"tenant_id"`
	CountryID      string  `json:"country_id"`
	ProductID      string  `json:"product_id"`
	SalesChannelID string  `json:"sales_channel_id"`
	Month          string  `json:"month"` // Formato YYYY-MM-01
	RevenueLocal   float64 `json:"revenue_local"`
	Units          int     `json:"units"`
	Note           *string `json:"note,omitempty"`

	Country      *Country      `json:"country,omitempty"`
	Product      *Product      `json:"product,omitempty"`
	SalesChannel *SalesChannel `json:"sales_channel,omitempty"`
}

// HasRelations indica se as três relações foram carregadas
func (s *Sale) HasRelations() bool {
	return s.Country != nil && s.Product != nil && s.SalesChannel != nil
}
