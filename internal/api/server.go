package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/margin-dashboard-api/internal/api/handler"
	"github.com/vfg2006/margin-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/listing"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
	"github.com/vfg2006/margin-dashboard-api/pkg/middleware"
)

// Services reúne as dependências expostas pela API
type Services struct {
	DB            handler.Pinger
	Authenticator authenticating.Authenticator
	Reporter      reporting.Reporter
	Lister        listing.Lister
	CronJobs      handler.CronJobServices
}

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o roteador com a cadeia de middlewares
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.DB)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Reports(services.Reporter)...),
		router.WithRoutes(handler.Records(services.Lister)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.CORS.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.WithFields(log.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
