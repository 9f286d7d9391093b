// internal/adapters/sosa/client.go
package sosa

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"sosa_resort/internal/adapters/observability"
	"sosa_resort/internal/domain"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultCacheTTL = 5 * time.Minute
	userAgent       = "sosa-resort/1.0"
)

type Config struct {
	BaseURL  string // site host, used for storage image URLs
	APIURL   string // versioned API root; defaults to BaseURL + "/api/v1"
	APIKey   string
	Timeout  time.Duration
	RPS      int
	Cache    domain.Cache // nil disables response caching
	CacheTTL time.Duration
	HTTP     *http.Client
}

type Client struct {
	api   *url.URL
	base  string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
	cache *responseCache
	sf    singleflight.Group
	now   func() time.Time
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	apiURL := cfg.APIURL
	if apiURL == "" {
		if base == "" {
			return nil, fmt.Errorf("base URL is required")
		}
		apiURL = base + "/api/v1"
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url must be absolute: %q", apiURL)
	}
	if base == "" {
		base = u.Scheme + "://" + u.Host
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 10
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	hc := cfg.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	c := &Client{
		api:  u,
		base: base,
		hc:   hc,
		key:  cfg.APIKey,
		rl:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
		now:  time.Now,
	}
	if cfg.Cache != nil {
		c.cache = &responseCache{store: cfg.Cache, ttl: cfg.CacheTTL}
	}
	return c, nil
}

// BaseURL is the site host images are served from.
func (c *Client) BaseURL() string { return c.base }

// Request carries the optional parts of a call.
type Request struct {
	Params  url.Values
	Body    any
	NoCache bool // skip the response cache for this GET
}

// Payload is a response after envelope unwrapping. When the body was the
// standard success envelope, Data is the inner data and Pagination/Meta are
// its siblings; otherwise Data is the raw body.
type Payload struct {
	Status     int
	Enveloped  bool
	Message    string
	Data       json.RawMessage
	Pagination *domain.Pagination
	Meta       *domain.Meta
}

func (c *Client) Get(ctx context.Context, path string, params url.Values) (Payload, error) {
	return c.Do(ctx, http.MethodGet, path, Request{Params: params})
}

func (c *Client) Post(ctx context.Context, path string, body any) (Payload, error) {
	return c.Do(ctx, http.MethodPost, path, Request{Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (Payload, error) {
	return c.Do(ctx, http.MethodPut, path, Request{Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body any) (Payload, error) {
	return c.Do(ctx, http.MethodPatch, path, Request{Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (Payload, error) {
	return c.Do(ctx, http.MethodDelete, path, Request{})
}

// Do sends one request through the cache, the limiter and the normalizer.
// Every failure comes back as *domain.APIError.
func (c *Client) Do(ctx context.Context, method, path string, r Request) (Payload, error) {
	target := c.resolve(path, r.Params)

	if method != http.MethodGet {
		// the API has no cache tags, so any write drops every cached read
		defer c.invalidateAfterMutation(ctx, method, target)
		raw, err := c.send(ctx, method, target, r.Body, 1)
		if err != nil {
			return Payload{}, err
		}
		return normalize(raw.Status, raw.Body), nil
	}

	if err := ctx.Err(); err != nil {
		return Payload{}, domain.NewNetworkError(err)
	}
	key := cacheKey(target)
	useCache := c.cache != nil && !r.NoCache
	if useCache {
		if hit, ok := c.cache.lookup(ctx, key); ok {
			log.Debug().Str("key", key).Msg("response cache hit")
			return normalize(hit.Status, hit.Body), nil
		}
	}

	// calls started after a cache clear never join one started before it
	var epoch uint64
	if useCache {
		epoch = c.cache.epoch()
	}
	// joined callers share one upstream call; it must outlive whichever caller started it
	ch := c.sf.DoChan(key+"#"+strconv.FormatUint(epoch, 10), func() (any, error) {
		sctx := context.WithoutCancel(ctx)
		raw, err := c.send(sctx, method, target, nil, 2)
		if err == nil && useCache {
			c.cache.save(sctx, key, raw, epoch)
		}
		return raw, err
	})
	select {
	case <-ctx.Done():
		return Payload{}, domain.NewNetworkError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Payload{}, res.Err
		}
		raw := res.Val.(rawResponse)
		return normalize(raw.Status, raw.Body), nil
	}
}

// Probe issues an uncached GET and reports only whether it succeeded.
func (c *Client) Probe(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodGet, path, Request{NoCache: true})
	return err
}

func (c *Client) invalidateAfterMutation(ctx context.Context, method string, target *url.URL) {
	if c.cache == nil {
		return
	}
	// the caller's ctx may already be done; clearing must still happen
	res := c.cache.clear(context.WithoutCancel(ctx))
	if res.OK() {
		log.Debug().Str("method", method).Str("url", target.Path).Msg("cache cleared after mutation")
	}
}

// ClearCache drops every cached response. Failures are reported, never raised.
func (c *Client) ClearCache(ctx context.Context) CacheResult {
	if c.cache == nil {
		return CacheResult{Op: "clear"}
	}
	return c.cache.clear(ctx)
}

// ForgetEndpoint drops the cached GET for one endpoint, e.g. "/public/cottages?per_page=1".
func (c *Client) ForgetEndpoint(ctx context.Context, endpoint string) CacheResult {
	path, rawQuery, _ := strings.Cut(endpoint, "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return CacheResult{Op: "forget", Key: endpoint, Err: err}
	}
	key := cacheKey(c.resolve(path, params))
	if c.cache == nil {
		return CacheResult{Op: "forget", Key: key}
	}
	return c.cache.forget(ctx, key)
}

// ---- Internals ----

type rawResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

func (c *Client) resolve(path string, params url.Values) *url.URL {
	u := *c.api
	p, rawQuery, _ := strings.Cut(path, "?")
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(p, "/")
	q := url.Values{}
	if rawQuery != "" {
		if parsed, err := url.ParseQuery(rawQuery); err == nil {
			q = parsed
		}
	}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode() // sorted by key
	return &u
}

// cacheKey is the normalized request signature: method, URL and sorted query.
func cacheKey(u *url.URL) string {
	return http.MethodGet + " " + u.String()
}

// send performs the HTTP exchange. attempts > 1 allows retrying transport
// errors and 429/502/503/504, honoring Retry-After.
func (c *Client) send(ctx context.Context, method string, target *url.URL, body any, attempts int) (rawResponse, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return rawResponse{}, domain.NewRequestError(fmt.Errorf("encode request body: %w", err))
		}
		payload = b
	}

	endpoint := endpointLabel(target.Path)
	var lastErr error
	for i := 0; i < attempts; i++ {
		// client-side rate limiting
		if err := c.rl.Wait(ctx); err != nil {
			return rawResponse{}, domain.NewNetworkError(err)
		}

		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target.String(), rd)
		if err != nil {
			return rawResponse{}, domain.NewRequestError(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("X-Request-ID", uuid.NewString())
		propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("sosa", endpoint, 0, time.Since(start))
			lastErr = domain.NewNetworkError(err)
			log.Warn().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("no response from api")
			if ctx.Err() == nil && i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return rawResponse{}, lastErr
		}

		b, rerr := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
		resp.Body.Close()
		observability.ObserveExternal("sosa", endpoint, resp.StatusCode, time.Since(start))
		if rerr != nil {
			lastErr = domain.NewNetworkError(rerr)
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return rawResponse{}, lastErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return rawResponse{Status: resp.StatusCode, Body: b}, nil
		}

		apiErr := statusError(resp.StatusCode, b)
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = apiErr
			wait := retryAfter(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			return rawResponse{}, lastErr
		case http.StatusInternalServerError:
			log.Error().Str("endpoint", endpoint).Bytes("body", truncate(b, 2048)).Msg("api server error")
		}
		return rawResponse{}, apiErr
	}
	return rawResponse{}, lastErr
}

// normalize unwraps the standard success envelope. Anything else passes through.
func normalize(status int, body []byte) Payload {
	p := Payload{Status: status, Data: json.RawMessage(bytes.TrimSpace(body))}
	if len(p.Data) == 0 || p.Data[0] != '{' {
		return p
	}
	var env struct {
		Success    *bool              `json:"success"`
		Message    string             `json:"message"`
		Data       json.RawMessage    `json:"data"`
		Pagination *domain.Pagination `json:"pagination"`
		Meta       *domain.Meta       `json:"meta"`
	}
	if err := json.Unmarshal(p.Data, &env); err != nil || env.Success == nil || !*env.Success {
		return p
	}
	return Payload{
		Status:     status,
		Enveloped:  true,
		Message:    env.Message,
		Data:       env.Data,
		Pagination: env.Pagination,
		Meta:       env.Meta,
	}
}

// statusError copies message, error_code and errors from an error body.
func statusError(status int, body []byte) *domain.APIError {
	var eb struct {
		Message   string          `json:"message"`
		ErrorCode string          `json:"error_code"`
		Errors    json.RawMessage `json:"errors"`
	}
	_ = json.Unmarshal(body, &eb)
	var fields map[string][]string
	if len(eb.Errors) > 0 {
		if err := json.Unmarshal(eb.Errors, &fields); err != nil {
			fields = nil
		}
	}
	return domain.NewStatusError(status, eb.Message, eb.ErrorCode, fields)
}

var idSegment = regexp.MustCompile(`/\d+(/|$)`)

// endpointLabel keeps metric cardinality bounded by collapsing numeric ids.
func endpointLabel(path string) string {
	return idSegment.ReplaceAllString(path, "/:id$1")
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns 200ms doubled per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}

var errUnexpectedShape = errors.New("unexpected response shape")
