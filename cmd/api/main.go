package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/integrator/ecb"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/margin-dashboard-api/internal/api"
	"github.com/vfg2006/margin-dashboard-api/internal/api/handler"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/scheduler"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/listing"
	"github.com/vfg2006/margin-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	log.L.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.MigrationsEnabled {
		if err := migration.Run(pgConn.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	userRepo := repository.NewUserRepository(pgConn)
	countryRepo := repository.NewCountryRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	mediaSpendRepo := repository.NewMediaSpendRepository(pgConn)
	exchangeRateRepo := repository.NewExchangeRateRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg.Auth)

	loader := reporting.NewRepositoryLoader(countryRepo, productRepo, saleRepo, mediaSpendRepo, exchangeRateRepo)
	reportService := reporting.NewService(loader, cfg.Reports)
	listingService := listing.NewService(saleRepo, exchangeRateRepo)

	ecbClient := ecb.NewClient(cfg.ECB)
	exchangeRateSyncService := scheduler.NewExchangeRateSyncService(
		countryRepo,
		exchangeRateRepo,
		ecbClient,
		cfg,
	)

	if err := exchangeRateSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de sincronização de câmbio")
	} else {
		log.L.Info("Agendador de sincronização de câmbio iniciado com sucesso")
	}

	server := api.New(cfg, api.Services{
		DB:            pgConn,
		Authenticator: authenticator,
		Reporter:      reportService,
		Lister:        listingService,
		CronJobs: handler.CronJobServices{
			ExchangeRateSyncService: exchangeRateSyncService,
		},
	})

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
