// Package ecb consulta as taxas médias mensais de câmbio publicadas pelo Banco Central Europeu
package ecb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/vfg2006/margin-dashboard-api/internal/config"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
	"github.com/vfg2006/margin-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrRateNotPublished indica que o BCE ainda não publicou a média do mês
var ErrRateNotPublished = errors.New("taxa de câmbio não publicada para o período")

type Client interface {
	// GetMonthlyRate retorna quantas unidades da moeda valem 1 EUR no mês (YYYY-MM-01)
	GetMonthlyRate(ctx context.Context, currency, month string) (float64, error)
}

type ECBClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewClient(cfg config.ECB) *ECBClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &ECBClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(ttl, 2*ttl),
	}
}

func (c *ECBClient) GetMonthlyRate(ctx context.Context, currency, month string) (float64, error) {
	currency = strings.ToUpper(currency)
	if currency == domain.EUR {
		return 1, nil
	}

	start, err := domain.MonthToTime(month)
	if err != nil {
		return 0, fmt.Errorf("mês inválido %q: %w", month, err)
	}

	cacheKey := currency + "-" + month
	if rate, found := c.cache.Get(cacheKey); found {
		return rate.(float64), nil
	}

	period := start.Format("2006-01")
	params := url.Values{}
	params.Add("startPeriod", period)
	params.Add("endPeriod", period)
	params.Add("format", "jsondata")

	reqURL := fmt.Sprintf("%s/M.%s.EUR.SP00.A?%s", c.baseURL, currency, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("erro ao consultar o BCE: %w", err)
	}
	defer resp.Body.Close()

	// 404 e corpo vazio são as duas formas do BCE dizer que não há dado no período
	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s %s", ErrRateNotPublished, currency, period)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("BCE retornou status %d para %s %s", resp.StatusCode, currency, period)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("erro ao ler resposta do BCE: %w", err)
	}
	if len(body) == 0 {
		return 0, fmt.Errorf("%w: %s %s", ErrRateNotPublished, currency, period)
	}

	var data Response
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("erro ao decodificar resposta do BCE: %w", err)
	}

	rate, ok := data.firstObservation()
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: %s %s", ErrRateNotPublished, currency, period)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"currency": currency,
		"month":    month,
		"rate":     rate,
	}).Debug("Taxa obtida do BCE")

	c.cache.Set(cacheKey, rate, cache.DefaultExpiration)

	return rate, nil
}
