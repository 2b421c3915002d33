package reporting

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrCountryNotFound     = errors.New("país não encontrado")
	ErrMissingExchangeRate = errors.New("taxa de câmbio ausente")
	ErrInvalidPeriod       = errors.New("período inválido")
)

// ReportError carrega o código da API junto do erro de domínio
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(baseErr error, code string, details string) *ReportError {
	return &ReportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
