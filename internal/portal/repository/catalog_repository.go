package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ratemynus-portal/internal/entity"
	"ratemynus-portal/internal/portal/config"
	"ratemynus-portal/pkg/common"
	"ratemynus-portal/pkg/logger"
	"ratemynus-portal/pkg/metrics"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrNotFound is returned when the review API has no module for a code.
	ErrNotFound = errors.New("module not found")
	// ErrUpstream covers transport failures, non-2xx answers and an open breaker.
	ErrUpstream = errors.New("review api unavailable")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed review api response")
)

const (
	endpointList   = "list"
	endpointGet    = "get"
	endpointSearch = "search"
)

// CatalogRepository reads modules from the external review API.
type CatalogRepository interface {
	ListModules(ctx context.Context) ([]entity.Module, error)
	GetModule(ctx context.Context, code string) (*entity.Module, error)
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}

type catalogRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	breaker        *gobreaker.CircuitBreaker
}

// NewCatalogRepository creates a CatalogRepository backed by the review API.
func NewCatalogRepository(cfg *config.Config, log *logger.Logger) CatalogRepository {
	perRequest := time.Minute / time.Duration(cfg.Catalog.MaxRequestPerMinute)
	burst := cfg.Catalog.MaxRequestPerMinute / 60
	if burst < 1 {
		burst = 1
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "catalog",
		Timeout: cfg.Catalog.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Catalog.BreakerMaxFailures
		},
		IsSuccessful: func(err error) bool {
			// A missing module or a superseded request is not an outage.
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				logger.StringField("component", name),
				logger.StringField("from", from.String()),
				logger.StringField("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateToFloat(to))
		},
	})

	return &catalogRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Catalog.Timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(perRequest), burst),
		breaker:        breaker,
	}
}

// ListModules returns every module known to the review API.
func (r *catalogRepository) ListModules(ctx context.Context) ([]entity.Module, error) {
	body, err := r.sendRequest(ctx, endpointList, r.endpoint(common.CatalogPathModules, nil))
	if err != nil {
		return nil, asUpstream(err)
	}

	var modules []entity.Module
	if err := json.Unmarshal(body, &modules); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode module list", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return modules, nil
}

// GetModule returns a single module. ErrNotFound is returned for unknown codes.
func (r *catalogRepository) GetModule(ctx context.Context, code string) (*entity.Module, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNotFound
	}

	path := common.CatalogPathModules + "/" + url.PathEscape(code)
	body, err := r.sendRequest(ctx, endpointGet, r.endpoint(path, nil))
	if err != nil {
		return nil, err
	}

	var module entity.Module
	if err := json.Unmarshal(body, &module); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode module", logger.ErrorField(err), logger.StringField("code", code))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &module, nil
}

// Search returns the review API's ranked matches for query, unfiltered.
func (r *catalogRepository) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	body, err := r.sendRequest(ctx, endpointSearch, r.endpoint(common.CatalogPathSearch, url.Values{"q": {query}}))
	if err != nil {
		return nil, asUpstream(err)
	}

	var results []entity.SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode search results", logger.ErrorField(err), logger.StringField("query", query))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return results, nil
}

func (r *catalogRepository) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(r.cfg.Catalog.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (r *catalogRepository) sendRequest(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("url", rawURL),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	start := time.Now()
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.do(ctx, rawURL)
	})
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "not_found").Inc()
			r.log.DebugContext(ctx, "Review API returned not found", fields...)
			return nil, err
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "breaker_open").Inc()
			fields = append(fields, zap.Error(err))
			r.log.WarnContext(ctx, "Review API circuit open, failing fast", fields...)
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		case errors.Is(err, context.Canceled):
			metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "canceled").Inc()
			r.log.DebugContext(ctx, "Review API request canceled", fields...)
			return nil, err
		default:
			metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
			fields = append(fields, zap.Error(err))
			r.log.ErrorContext(ctx, "Review API request failed", fields...)
			return nil, err
		}
	}

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return result.([]byte), nil
}

func (r *catalogRepository) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	if id, ok := ctx.Value(common.ContextKeyRequestID).(string); ok && id != "" {
		req.Header.Set(common.HeaderRequestID, id)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return body, nil
}

// asUpstream reports a 404 from a collection endpoint as an outage.
func asUpstream(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: collection endpoint returned 404", ErrUpstream)
	}
	return err
}

func breakerStateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
