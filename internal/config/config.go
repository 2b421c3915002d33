package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	ECB              ECB              `mapstructure:",squash"`
	ExchangeRateSync ExchangeRateSync `mapstructure:",squash"`
	Reports          Reports          `mapstructure:",squash"`
	CORS             CORS             `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN               string `mapstructure:"-"`
	Driver            string `mapstructure:"database_driver"`
	Password          string `mapstructure:"database_password"`
	URL               string `mapstructure:"database_url"`
	User              string `mapstructure:"database_user"`
	MigrationsEnabled bool   `mapstructure:"database_migrations_enabled"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type ECB struct {
	BaseURL        string        `mapstructure:"ecb_base_url"`
	TimeoutSeconds int           `mapstructure:"ecb_timeout_seconds"`
	CacheTTL       time.Duration `mapstructure:"ecb_cache_ttl"`
}

type ExchangeRateSync struct {
	CronSchedule        string `mapstructure:"exchange_rate_sync_cron"`
	MonthLookBack       int    `mapstructure:"exchange_rate_sync_month_lookback"`
	RequestDelaySeconds int    `mapstructure:"exchange_rate_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"exchange_rate_sync_enabled"`
}

type Reports struct {
	// FailOnMissingRate transforma câmbio ausente em erro em vez de usar 1
	FailOnMissingRate bool          `mapstructure:"reports_fail_on_missing_rate"`
	CacheTTL          time.Duration `mapstructure:"reports_cache_ttl"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "localhost:5432/margin?sslmode=disable")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "root")
	v.SetDefault("DATABASE_MIGRATIONS_ENABLED", true)

	v.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL
	v.SetDefault("AUTH_TOKEN_TTL", "24h")

	v.SetDefault("ECB_BASE_URL", "https://data-api.ecb.europa.eu/service/data/EXR")
	v.SetDefault("ECB_TIMEOUT_SECONDS", 10)
	v.SetDefault("ECB_CACHE_TTL", "24h")

	v.SetDefault("EXCHANGE_RATE_SYNC_CRON", "0 6 2 * *")           // Dia 2 de cada mês às 6h
	v.SetDefault("EXCHANGE_RATE_SYNC_MONTH_LOOKBACK", 2)           // Mês atual e o anterior
	v.SetDefault("EXCHANGE_RATE_SYNC_REQUEST_DELAY_SECONDS", 1)    // Entre requisições ao BCE
	v.SetDefault("EXCHANGE_RATE_SYNC_ENABLED", false)

	v.SetDefault("REPORTS_FAIL_ON_MISSING_RATE", false)
	v.SetDefault("REPORTS_CACHE_TTL", "5m")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	return Load(v)
}

// Load decodifica a configuração a partir de uma instância do viper
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	// AutomaticEnv só resolve chaves conhecidas; os defaults registram todas
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar configuração: %w", err)
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET é obrigatório")
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o .env do diretório atual ou de diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
