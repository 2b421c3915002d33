package handler

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/vfg2006/margin-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/listing"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-dashboard-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/metrics",
			Method:      http.MethodGet,
			Handler:     GetMetricsReport(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/months",
			Method:      http.MethodGet,
			Handler:     GetAvailableMonths(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/countries/:id/products",
			Method:      http.MethodGet,
			Handler:     GetProductBreakdown(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
	}
}

func Records(service listing.Lister) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exchange-rates",
			Method:      http.MethodGet,
			Handler:     ListExchangeRates(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exchange-rates/periods",
			Method:      http.MethodGet,
			Handler:     ListRatePeriods(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []alice.Constructor{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []alice.Constructor{middleware.AdminOrSupervisor()},
		},
	}
}
