package handler

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
	"github.com/vfg2006/margin-dashboard-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	writeJSONStatus(w, r, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// tenantFromRequest obtém o tenant do token; escreve o erro quando ausente
func tenantFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.TenantID == "" {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return "", false
	}
	return claims.TenantID, true
}

// parseRecordFilter lê from, to e country (repetido ou separado por vírgula)
func parseRecordFilter(r *http.Request) (*domain.RecordFilter, error) {
	query := r.URL.Query()
	filter := &domain.RecordFilter{}

	if from := query.Get("from"); from != "" {
		month, err := domain.ParseMonth(from)
		if err != nil {
			return nil, errors.Wrap(err, "parâmetro from")
		}
		filter.StartMonth = &month
	}

	if to := query.Get("to"); to != "" {
		month, err := domain.ParseMonth(to)
		if err != nil {
			return nil, errors.Wrap(err, "parâmetro to")
		}
		filter.EndMonth = &month
	}

	for _, value := range query["country"] {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.CountryIDs = append(filter.CountryIDs, id)
			}
		}
	}

	return filter, nil
}

func handleReportError(w http.ResponseWriter, r *http.Request, err error) {
	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		apiErrors.WriteError(w, reportErr.Code, reportErr.Err.Error(), map[string]any{
			"details": reportErr.Details,
		})
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar relatório")
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar dados", nil)
}
