package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

// GetMetricsReport retorna as métricas mensais por país e o consolidado em EUR
func GetMetricsReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tenantID, ok := tenantFromRequest(w, r)
		if !ok {
			return
		}

		filter, err := parseRecordFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := service.GetReport(r.Context(), tenantID, &domain.ReportFilters{
			StartMonth: filter.StartMonth,
			EndMonth:   filter.EndMonth,
			CountryIDs: filter.CountryIDs,
		})
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		logger.WithFields(log.Fields{
			"months":    len(report.Months),
			"countries": len(report.Countries),
		}).Info("reports: relatório gerado com sucesso")

		writeJSON(w, r, report)
	})
}

// GetAvailableMonths retorna os meses com dados do tenant
func GetAvailableMonths(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantFromRequest(w, r)
		if !ok {
			return
		}

		months, err := service.GetAvailableMonths(r.Context(), tenantID)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, map[string]any{
			"months": months,
		})
	})
}

func GetProductBreakdown(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantFromRequest(w, r)
		if !ok {
			return
		}

		countryID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if countryID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "País não informado", nil)
			return
		}

		rawMonth := r.URL.Query().Get("month")
		if rawMonth == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar o mês", nil)
			return
		}

		month, err := domain.ParseMonth(rawMonth)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		breakdown, err := service.GetProductBreakdown(r.Context(), tenantID, countryID, month)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, breakdown)
	})
}
