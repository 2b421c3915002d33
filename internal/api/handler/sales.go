package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/margin-dashboard-api/internal/usecases/listing"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

// ListSales lista as vendas do tenant; with_relations=true inclui país, produto e canal
func ListSales(service listing.Lister) http.Handler {
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

		if raw := r.URL.Query().Get("with_relations"); raw != "" {
			filter.WithRelations, err = strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "with_relations deve ser booleano", nil)
				return
			}
		}

		sales, err := service.ListSales(r.Context(), tenantID, filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("sales: erro ao listar vendas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar vendas", nil)
			return
		}

		writeJSON(w, r, sales)
	})
}
