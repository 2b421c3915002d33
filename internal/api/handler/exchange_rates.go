package handler

import (
	"net/http"

	"github.com/vfg2006/margin-dashboard-api/internal/usecases/listing"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

func ListExchangeRates(service listing.Lister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantFromRequest(w, r)
		if !ok {
			return
		}

		filter, err := parseRecordFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		rates, err := service.ListExchangeRates(r.Context(), tenantID, filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("exchange-rates: erro ao listar taxas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar taxas de câmbio", nil)
			return
		}

		writeJSON(w, r, rates)
	})
}

func ListRatePeriods(service listing.Lister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantFromRequest(w, r)
		if !ok {
			return
		}

		periods, err := service.ListRatePeriods(r.Context(), tenantID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("exchange-rates: erro ao listar períodos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar períodos de câmbio", nil)
			return
		}

		writeJSON(w, r, map[string]any{
			"periods": periods,
		})
	})
}
