package domain

import (
	"sort"
	"strings"
	"time"
)

// RecordFilter restringe a leitura de registros por intervalo de meses e países
type RecordFilter struct {
	StartMonth    *string
	EndMonth      *string
	CountryIDs    []string
	WithRelations bool
}

// ReportFilters são os filtros aceitos pelo relatório de métricas
type ReportFilters struct {
	StartMonth *string
	EndMonth   *string
	CountryIDs []string
}

// InRange verifica se o mês está dentro do intervalo do filtro
func (f *ReportFilters) InRange(month string) bool {
	if f == nil {
		return true
	}
	if f.StartMonth != nil && month < *f.StartMonth {
		return false
	}
	if f.EndMonth != nil && month > *f.EndMonth {
		return false
	}
	return true
}

// RecordFilter converte os filtros do relatório para o filtro de leitura
func (f *ReportFilters) RecordFilter() *RecordFilter {
	if f == nil {
		return &RecordFilter{}
	}
	return &RecordFilter{
		StartMonth: f.StartMonth,
		EndMonth:   f.EndMonth,
		CountryIDs: f.CountryIDs,
	}
}

// CacheKey gera uma chave estável para os filtros
func (f *ReportFilters) CacheKey() string {
	if f == nil {
		return "all"
	}

	start, end := "", ""
	if f.StartMonth != nil {
		start = *f.StartMonth
	}
	if f.EndMonth != nil {
		end = *f.EndMonth
	}

	countries := append([]string(nil), f.CountryIDs...)
	sort.Strings(countries)

	return start + "|" + end + "|" + strings.Join(countries, ",")
}

// CountryReport agrupa o resumo de um país com suas métricas mensais
type CountryReport struct {
	Summary CountryMetrics   `json:"summary"`
	Monthly []MonthlyMetrics `json:"monthly"`
}

// MetricsReport é o relatório completo de rentabilidade
type MetricsReport struct {
	Months       []string            `json:"months"`
	Countries    []CountryReport     `json:"countries"`
	Consolidated ConsolidatedMetrics `json:"consolidated"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
