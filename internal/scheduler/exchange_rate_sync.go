package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/integrator/ecb"
	"github.com/vfg2006/margin-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

const ecbSource = "ecb"

// ExchangeRateSyncConfig representa a configuração do agendador de câmbio
type ExchangeRateSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
	MonthLookBack       int
}

// SyncResult resume uma execução da sincronização
type SyncResult struct {
	Saved   int `json:"saved"`
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
}

// ExchangeRateSyncService busca no BCE as taxas mensais dos países fora do euro e grava em exchange_rates
type ExchangeRateSyncService struct {
	scheduler           *gocron.Scheduler
	config              ExchangeRateSyncConfig
	countryRepo         repository.CountryRepository
	exchangeRateRepo    repository.ExchangeRateRepository
	ecbClient           ecb.Client
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          SyncResult
}

func NewExchangeRateSyncService(
	countryRepo repository.CountryRepository,
	exchangeRateRepo repository.ExchangeRateRepository,
	ecbClient ecb.Client,
	appConfig *config.Config,
) *ExchangeRateSyncService {
	syncConfig := ExchangeRateSyncConfig{
		CronSchedule:        appConfig.ExchangeRateSync.CronSchedule,
		RequestDelaySeconds: appConfig.ExchangeRateSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.ExchangeRateSync.Enabled,
		MonthLookBack:       appConfig.ExchangeRateSync.MonthLookBack,
	}
	if syncConfig.MonthLookBack < 1 {
		syncConfig.MonthLookBack = 1
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"month_lookback":        syncConfig.MonthLookBack,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de câmbio carregada")

	return &ExchangeRateSyncService{
		scheduler:        gocron.NewScheduler(time.UTC),
		config:           syncConfig,
		countryRepo:      countryRepo,
		exchangeRateRepo: exchangeRateRepo,
		ecbClient:        ecbClient,
		now:              time.Now,
	}
}

// Start inicia o agendador
func (s *ExchangeRateSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Sincronização de câmbio desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de câmbio")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de câmbio: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de sincronização de câmbio")
		s.scheduler.Stop()
	}()

	return nil
}

// runSync garante uma única execução por vez
func (s *ExchangeRateSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Sincronização de câmbio já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	result, err := s.SyncExchangeRates(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastResult = result
	if err == nil {
		s.lastSyncCompletedAt = s.now()
	}
	s.syncMutex.Unlock()

	if err != nil {
		log.L.WithError(err).Error("Erro na sincronização de câmbio")
		return
	}

	log.L.WithFields(log.Fields{
		"duration": time.Since(startTime).String(),
		"saved":    result.Saved,
		"pending":  result.Pending,
		"failed":   result.Failed,
	}).Info("Sincronização de câmbio concluída")
}

// SyncExchangeRates percorre países e meses; falhas de um país são registradas e não interrompem os demais
func (s *ExchangeRateSyncService) SyncExchangeRates(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	countries, err := s.countryRepo.ListAllCountries(ctx)
	if err != nil {
		return result, fmt.Errorf("erro ao listar países: %w", err)
	}

	months := s.monthsToSync()

	for _, country := range countries {
		if country.CurrencyCode == domain.EUR {
			continue
		}

		for _, month := range months {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}

			logger := log.ForContext(ctx).WithFields(log.Fields{
				"country_id": country.ID,
				"tenant_id":  country.TenantID,
				"currency":   country.CurrencyCode,
				"month":      month,
			})

			rate, err := s.ecbClient.GetMonthlyRate(ctx, country.CurrencyCode, month)
			if err != nil {
				if errors.Is(err, ecb.ErrRateNotPublished) {
					result.Pending++
					logger.Info("Taxa ainda não publicada pelo BCE")
				} else {
					result.Failed++
					logger.WithError(err).Error("Erro ao obter taxa do BCE")
				}
				continue
			}

			err = s.exchangeRateRepo.SaveOrUpdate(ctx, &domain.ExchangeRate{
				TenantID:  country.TenantID,
				CountryID: country.ID,
				Month:     month,
				RateToEUR: rate,
				Source:    ecbSource,
			})
			if err != nil {
				result.Failed++
				logger.WithError(err).Error("Erro ao salvar taxa de câmbio")
				continue
			}

			result.Saved++

			if s.config.RequestDelaySeconds > 0 {
				select {
				case <-ctx.Done():
					return result, ctx.Err()
				case <-time.After(time.Duration(s.config.RequestDelaySeconds) * time.Second):
				}
			}
		}
	}

	return result, nil
}

// monthsToSync vai do mês corrente para trás, no formato YYYY-MM-01
func (s *ExchangeRateSyncService) monthsToSync() []string {
	now := s.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]string, 0, s.config.MonthLookBack)
	for i := 0; i < s.config.MonthLookBack; i++ {
		months = append(months, domain.NormalizeMonth(current.AddDate(0, -i, 0)))
	}

	return months
}

// TriggerManualSync inicia manualmente uma sincronização de câmbio
func (s *ExchangeRateSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Sincronização de câmbio já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	log.L.Info("Iniciando sincronização manual de câmbio")
	go s.runSync(context.Background())
}

// GetStatus retorna o status atual da sincronização
func (s *ExchangeRateSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_lookback":         s.config.MonthLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
