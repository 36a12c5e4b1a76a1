package gridiron

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
	"github.com/dynastylab/rosterdoc/internal/platform/logging"
	"github.com/dynastylab/rosterdoc/internal/platform/resilience"
	"github.com/dynastylab/rosterdoc/internal/usecase"
)

const (
	defaultBaseURL = "https://api.gridirondynastyindex.com/v1"

	pathPlayerValues = "/player-values"
	pathSellWindows  = "/sell-windows"
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errGridironTransient = crerr.New("gridiron transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Gridiron Dynasty Index valuation API. It satisfies
// valuation.Provider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type playerQuery struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Age      int    `json:"age"`
}

type dynastyValueEnvelope struct {
	Data struct {
		OverallScore           float64 `json:"overall_score"`
		YearsOfEliteProduction float64 `json:"years_of_elite_production"`
		Tier                   string  `json:"tier"`
		Trend                  string  `json:"trend"`
	} `json:"data"`
}

type sellWindowEnvelope struct {
	Data struct {
		Urgency string `json:"urgency"`
		Reason  string `json:"reason"`
	} `json:"data"`
}

func (c *Client) DynastyValue(ctx context.Context, item player.Player) (valuation.DynastyValue, error) {
	var envelope dynastyValueEnvelope
	if err := c.doJSON(ctx, pathPlayerValues, item, &envelope); err != nil {
		return valuation.DynastyValue{}, fmt.Errorf("fetch dynasty value player=%s: %w", item.Name, err)
	}

	return valuation.DynastyValue{
		OverallScore:           envelope.Data.OverallScore,
		YearsOfEliteProduction: envelope.Data.YearsOfEliteProduction,
		Tier:                   strings.TrimSpace(envelope.Data.Tier),
		Trend:                  strings.TrimSpace(envelope.Data.Trend),
	}, nil
}

func (c *Client) SellWindow(ctx context.Context, item player.Player) (valuation.SellWindow, error) {
	var envelope sellWindowEnvelope
	if err := c.doJSON(ctx, pathSellWindows, item, &envelope); err != nil {
		return valuation.SellWindow{}, fmt.Errorf("fetch sell window player=%s: %w", item.Name, err)
	}

	return valuation.SellWindow{
		Urgency: parseUrgency(envelope.Data.Urgency),
		Reason:  strings.TrimSpace(envelope.Data.Reason),
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, item player.Player, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gridiron circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: valuation provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := sonic.Marshal(playerQuery{
		Name:     strings.TrimSpace(item.Name),
		Position: string(item.Position),
		Age:      item.Age,
	})
	if err != nil {
		return crerr.Wrap(err, "marshal player query")
	}

	fullURL := c.baseURL + path
	key := path + ":" + strings.ToLower(strings.TrimSpace(item.Name))
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, body)
		if c.circuitEnabled {
			if reqErr != nil && isGridironCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errGridironTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errGridironTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errGridironTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "gridiron request failed",
		"curl_preview", buildRequestPreview(fullURL, body),
		"error", lastErr,
	)
	return nil, lastErr
}

// buildRequestPreview renders a redacted curl line for request logs.
func buildRequestPreview(fullURL string, body []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(fullURL))
	appendPart("-H")
	appendPart(shellQuote("Authorization: Bearer ***"))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(truncateForLog(string(body), 2048)))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}

func parseUrgency(raw string) valuation.Urgency {
	switch strings.ToUpper(strings.Join(strings.Fields(raw), " ")) {
	case "SELL NOW":
		return valuation.UrgencySellNow
	case "SELL SOON":
		return valuation.UrgencySellSoon
	case "BUY":
		return valuation.UrgencyBuy
	default:
		return valuation.UrgencyHold
	}
}

func isGridironCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errGridironTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const maxLen = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "...(truncated " + strconv.Itoa(len(text)-maxLen) + " bytes)"
}
