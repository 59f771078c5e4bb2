package translate

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// ---------------------------------------------------------------------------
// Rate limit state (global pause for parallel workers)
// ---------------------------------------------------------------------------

type rateLimitState struct {
	mu       sync.Mutex
	paused   int32 // atomic: 1 = paused
	pauseEnd time.Time
}

func (r *rateLimitState) isPaused() bool {
	return atomic.LoadInt32(&r.paused) == 1
}

func (r *rateLimitState) pause(duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	end := time.Now().Add(duration)
	if end.After(r.pauseEnd) {
		r.pauseEnd = end
	}
	atomic.StoreInt32(&r.paused, 1)
}

func (r *rateLimitState) unpause() {
	atomic.StoreInt32(&r.paused, 0)
}

// waitIfPaused blocks until the rate limit pause is over.
func (r *rateLimitState) waitIfPaused(ctx context.Context) error {
	for r.isPaused() {
		r.mu.Lock()
		remaining := time.Until(r.pauseEnd)
		r.mu.Unlock()
		if remaining <= 0 {
			r.unpause()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(min(remaining, 100*time.Millisecond)):
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Retrying transport
// ---------------------------------------------------------------------------

// defaultRetryAfter is used for 429 responses without a Retry-After header.
const defaultRetryAfter = 10 * time.Second

// retryTransport retries network errors and 5xx responses with exponential
// backoff, and 429 responses after Retry-After. A 429 pauses every request
// sharing the same state.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration // first backoff step; doubles per attempt
	rl         *rateLimitState
	debugf     func(format string, args ...any)
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		if err := t.rl.waitIfPaused(ctx); err != nil {
			return nil, err
		}

		r := req
		if attempt > 0 {
			if req.Body != nil && req.GetBody == nil {
				// Body cannot be replayed.
				return t.base.RoundTrip(req)
			}
			r = req.Clone(ctx)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				r.Body = body
			}
		}

		resp, err := t.base.RoundTrip(r)
		if err != nil {
			if ctx.Err() != nil || attempt >= t.maxRetries {
				return nil, err
			}
			t.logf("%s %s attempt %d failed: %v", req.Method, req.URL.Path, attempt+1, err)
			if err := sleepCtx(ctx, t.backoff<<attempt); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests && attempt < t.maxRetries:
			delay := retryAfter(resp.Header.Get("Retry-After"))
			drain(resp)
			t.logf("429 rate limited, waiting %v before retry (attempt %d/%d)", delay, attempt+1, t.maxRetries)
			t.rl.pause(delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
			continue
		case resp.StatusCode >= 500 && attempt < t.maxRetries:
			drain(resp)
			t.logf("%s %s returned %d, retrying (attempt %d/%d)", req.Method, req.URL.Path, resp.StatusCode, attempt+1, t.maxRetries)
			if err := sleepCtx(ctx, t.backoff<<attempt); err != nil {
				return nil, err
			}
			continue
		}
		return resp, nil
	}
}

func (t *retryTransport) logf(format string, args ...any) {
	if t.debugf != nil {
		t.debugf(format, args...)
	}
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) time.Duration {
	if v == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ---------------------------------------------------------------------------
// HTTP client with real proxy support
// ---------------------------------------------------------------------------

// makeHTTPClient builds the client used for all service calls. timeout
// bounds the wait for response headers of each attempt, not the retries.
func makeHTTPClient(proxyURL string, timeout time.Duration, maxRetries int, debugf func(string, ...any)) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Support both --proxy flag and HTTP_PROXY/HTTPS_PROXY env vars
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	if timeout > 0 {
		transport.ResponseHeaderTimeout = timeout
	}

	return &http.Client{
		Transport: &retryTransport{
			base:       transport,
			maxRetries: maxRetries,
			backoff:    time.Second,
			rl:         &rateLimitState{},
			debugf:     debugf,
		},
	}
}
