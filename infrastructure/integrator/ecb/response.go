package ecb

// Response é o recorte do formato jsondata (SDMX-JSON) usado na leitura das taxas
type Response struct {
	DataSets []DataSet `json:"dataSets"`
}

type DataSet struct {
	Series map[string]Series `json:"series"`
}

// Series guarda as observações por índice de período; o valor é o primeiro item do array
type Series struct {
	Observations map[string][]float64 `json:"observations"`
}

// firstObservation percorre as séries até achar a observação do primeiro período
func (r *Response) firstObservation() (float64, bool) {
	if len(r.DataSets) == 0 {
		return 0, false
	}

	for _, series := range r.DataSets[0].Series {
		if values, ok := series.Observations["0"]; ok && len(values) > 0 {
			return values[0], true
		}
	}

	return 0, false
}
