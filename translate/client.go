package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the global translator endpoint.
const DefaultEndpoint = "https://api.cognitive.microsofttranslator.com/"

const apiVersion = "3.0"

// Config holds translator client settings.
type Config struct {
	Endpoint        string
	SubscriptionKey string
	Region          string        // optional; required by regional resources
	SourceLocale    string        // sent as "from" when set
	CharsPerMinute  int           // 0 disables client-side rate limiting
	Proxy           string        // proxy URL; empty uses HTTP(S)_PROXY
	Timeout         time.Duration // per-attempt wait for response headers
	MaxRetries      int

	// OnDebug receives retry and request traces.
	OnDebug func(format string, args ...any)

	// HTTPClient replaces the default retrying client.
	HTTPClient *http.Client
}

// Client talks to the translator service.
type Client struct {
	endpoint *url.URL
	key      string
	region   string
	from     string
	http     *http.Client
	limiter  *rate.Limiter
	debugf   func(format string, args ...any)
}

// Translation is one translated text for one target locale.
type Translation struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

// DetectedLanguage is reported when no source locale was sent.
type DetectedLanguage struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// Result is the service's answer for one input text: one translation per
// target locale of the request.
type Result struct {
	DetectedLanguage *DetectedLanguage `json:"detectedLanguage,omitempty"`
	Translations     []Translation     `json:"translations"`
}

// Language describes a supported translation target.
type Language struct {
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Dir        string `json:"dir"`
}

// NewClient creates a client for cfg.Endpoint.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("translator endpoint is required")
	}
	u, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", cfg.Endpoint)
	}

	c := &Client{
		endpoint: u,
		key:      strings.TrimSpace(cfg.SubscriptionKey),
		region:   strings.TrimSpace(cfg.Region),
		from:     cfg.SourceLocale,
		http:     cfg.HTTPClient,
		debugf:   cfg.OnDebug,
	}
	if c.http == nil {
		c.http = makeHTTPClient(cfg.Proxy, cfg.Timeout, cfg.MaxRetries, cfg.OnDebug)
	}
	if cfg.CharsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.CharsPerMinute)/60), cfg.CharsPerMinute)
	}
	return c, nil
}

// Translate submits texts once per locale group, in order, one request at a
// time, and returns the records of all responses concatenated in group
// order. Each response carries one record per text, so the result holds
// len(groups)*len(texts) records.
//
// Any failing group fails the whole call and no partial result is returned.
// Errors reported by the service are *ServiceError.
func (c *Client) Translate(ctx context.Context, texts []string, groups [][]string) ([]Result, error) {
	if len(texts) == 0 || len(groups) == 0 {
		return nil, nil
	}
	if c.key == "" {
		return nil, ErrMissingKey
	}

	body := encodeTexts(texts)
	chars := utf8.RuneCount(body)

	results := make([]Result, 0, len(texts)*len(groups))
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		if err := c.waitRate(ctx, chars*len(group)); err != nil {
			return nil, err
		}
		batch, err := c.translateGroup(ctx, body, group)
		if err != nil {
			return nil, fmt.Errorf("batch %d/%d (%s): %w", i+1, len(groups), strings.Join(group, ","), err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("batch %d/%d: %w: got %d records for %d texts",
				i+1, len(groups), ErrResponseMismatch, len(batch), len(texts))
		}
		results = append(results, batch...)
	}
	return results, nil
}

func (c *Client) translateGroup(ctx context.Context, body []byte, group []string) ([]Result, error) {
	q := url.Values{}
	q.Set("api-version", apiVersion)
	if c.from != "" {
		q.Set("from", c.from)
	}
	for _, to := range group {
		q.Add("to", to)
	}
	endpoint := c.resolve("translate", q)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	if c.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", c.region)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-ClientTraceId", uuid.NewString())

	c.logf("POST %s (%d locales, %d bytes)", endpoint, len(group), len(body))

	var out []Result
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Languages returns the service's translation targets keyed by locale code.
// No subscription key is needed.
func (c *Client) Languages(ctx context.Context) (map[string]Language, error) {
	q := url.Values{}
	q.Set("api-version", apiVersion)
	q.Set("scope", "translation")
	endpoint := c.resolve("languages", q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-ClientTraceId", uuid.NewString())

	var out struct {
		Translation map[string]Language `json:"translation"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("fetching languages: %w", err)
	}
	return out.Translation, nil
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if se := parseServiceError(resp.StatusCode, respBody); se != nil {
			return se
		}
		return fmt.Errorf("service returned status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	if se := parseServiceError(resp.StatusCode, respBody); se != nil {
		return se
	}
	if err := json.Unmarshal(respBody, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) resolve(path string, q url.Values) string {
	u := *c.endpoint
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + path
	u.RawQuery = q.Encode()
	return u.String()
}

// waitRate blocks until n characters may be sent. Requests larger than the
// limiter burst are charged the full burst.
func (c *Client) waitRate(ctx context.Context, n int) error {
	if c.limiter == nil {
		return nil
	}
	if b := c.limiter.Burst(); n > b {
		n = b
	}
	return c.limiter.WaitN(ctx, n)
}

func (c *Client) logf(format string, args ...any) {
	if c.debugf != nil {
		c.debugf(format, args...)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
