package domain

// MediaSpend representa um investimento em mídia de um país em um mês, em moeda local
type MediaSpend struct {
	ID               string  `json:"id"`
	TenantID         string  `json:"tenant_id"`
	CountryID        string  `json:"country_id"`
	MediaChannelID   string  `json:"media_channel_id"`
	SubChannel       *string `json:"sub_channel,omitempty"`
	CreativeID       *string `json:"creative_id,omitempty"`
	Month            string  `json:"month"` // Formato YYYY-MM-01
	AmountLocal      float64 `json:"amount_local"`
	DistributeEvenly bool    `json:"distribute_evenly"`
	Note             *string `json:"note,omitempty"`
}

// MediaSpendProduct atribui uma fração já dividida de um MediaSpend a um produto.
// A soma das frações de um MediaSpend é igual ao valor original (garantido na escrita).
type MediaSpendProduct struct {
	ID           string  `json:"id"`
	MediaSpendID string  `json:"media_spend_id"`
	ProductID    string  `json:"product_id"`
	AmountLocal  float64 `json:"amount_local"`
}
