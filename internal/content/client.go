// Package content загружает витрину прогнозов с удалённого JSON-хоста:
// карточки тарифов, прогнозы по уровням и результаты. Данные отдаются
// как есть, сервис их не проверяет и не изменяет; ответы ненадолго
// кешируются в redis.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/VictonicTechnologies/thegurutips/internal/config"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
)

// ErrUnknownTier — запрошен несуществующий уровень прогнозов.
var ErrUnknownTier = errors.New("unknown predictions tier")

// Уровни прогнозов, каждому соответствует свой JSON-ресурс.
var tierResources = map[string]string{
	"basic":   "basic-predictions.json",
	"premium": "premium-predictions.json",
	"free":    "free-predictions.json",
}

// Cache описывает методы кеша, используемые клиентом.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Client — HTTP-клиент витрины.
type Client struct {
	baseURL    string
	ttl        time.Duration
	httpClient *http.Client
	cache      Cache
	log        *slog.Logger
}

// New создает новый Client. cache может быть nil, тогда каждый запрос
// идёт на хост напрямую.
func New(cfg config.Content, cache Cache, log *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		ttl:        cfg.CacheTTL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		log:        log,
	}
}

// Cards возвращает карточки тарифных планов.
func (c *Client) Cards(ctx context.Context) ([]models.CardData, error) {
	var cards []models.CardData
	if err := c.get(ctx, "cards.json", &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Predictions возвращает прогнозы уровня tier: basic, premium или free.
func (c *Client) Predictions(ctx context.Context, tier string) ([]models.Prediction, error) {
	resource, ok := tierResources[tier]
	if !ok {
		return nil, fmt.Errorf("tier %q: %w", tier, ErrUnknownTier)
	}
	var predictions []models.Prediction
	if err := c.get(ctx, resource, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}

// Results возвращает результаты сыгранных матчей по дням.
func (c *Client) Results(ctx context.Context) ([]models.ResultDay, error) {
	var results []models.ResultDay
	if err := c.get(ctx, "results.json", &results); err != nil {
		return nil, err
	}
	return results, nil
}

// get загружает ресурс, по возможности из кеша. Параметр _ с текущим
// временем обходит кеширование на стороне хоста.
func (c *Client) get(ctx context.Context, resource string, out any) error {
	const op = "content.get"

	cacheKey := "content:" + resource
	if c.cache != nil {
		found, err := c.cache.Get(cacheKey, out)
		if err != nil {
			c.log.Warn("content cache read failed", slog.String("key", cacheKey), sl.Err(err))
		} else if found {
			return nil
		}
	}

	url := c.baseURL + resource + "?_=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s for %s", op, resp.Status, resource)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(cacheKey, out, c.ttl); err != nil {
			c.log.Warn("failed to cache content", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return nil
}
