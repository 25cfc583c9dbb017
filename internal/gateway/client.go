package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"solana-token-scope/internal/observability"
)

// Default configuration values.
const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; token-scope/1.0)"

	maxBodyBytes = 8 << 20
)

// httpClient is the shared GET/JSON transport of every provider client.
// It never retries; callers decide whether to continue.
type httpClient struct {
	provider string
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	headers  http.Header
	log      logrus.FieldLogger
}

// ClientOption configures a provider client.
type ClientOption func(*httpClient)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *httpClient) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *httpClient) {
		c.client = client
	}
}

// WithRateLimit limits outbound requests to rps per second. rps <= 0 disables limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(c *httpClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) ClientOption {
	return func(c *httpClient) {
		c.headers.Set(key, value)
	}
}

// WithLogger sets the logger used for failed fetches.
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *httpClient) {
		if log != nil {
			c.log = log
		}
	}
}

func newHTTPClient(provider, baseURL string, opts ...ClientOption) *httpClient {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &httpClient{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: DefaultTimeout},
		headers:  make(http.Header),
		log:      discard,
	}
	c.headers.Set("Accept", "application/json")
	c.headers.Set("User-Agent", DefaultUserAgent)
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("provider", provider)
	return c
}

// getJSON performs GET baseURL+path?query and decodes the body into out.
// Every failure is returned as a *FetchError.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = KindOf(err).String()
			c.logFailure(path, err)
		}
		observability.RecordFetch(c.provider, result, time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			return c.fail(KindNetwork, fmt.Errorf("rate limit wait: %w", werr))
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if rerr != nil {
		return c.fail(KindNetwork, fmt.Errorf("create request: %w", rerr))
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, derr := c.client.Do(req)
	if derr != nil {
		return c.fail(KindNetwork, fmt.Errorf("do request: %w", derr))
	}
	defer resp.Body.Close()

	body, berr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if berr != nil {
		return c.fail(KindNetwork, fmt.Errorf("read body: %w", berr))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		fe := c.fail(KindUnauthenticated, ErrUnauthenticated)
		fe.StatusCode = resp.StatusCode
		return fe
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		fe := c.fail(KindHTTPStatus, fmt.Errorf("%s", snippet(body)))
		fe.StatusCode = resp.StatusCode
		return fe
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return c.fail(KindEmptyResult, errors.New("empty body"))
	}
	if uerr := json.Unmarshal(body, out); uerr != nil {
		return c.fail(KindDecode, fmt.Errorf("unmarshal response: %w", uerr))
	}
	return nil
}

func (c *httpClient) fail(kind ErrorKind, err error) *FetchError {
	return NewError(c.provider, kind, err)
}

func (c *httpClient) logFailure(path string, err error) {
	var fe *FetchError
	fields := logrus.Fields{"path": path}
	if errors.As(err, &fe) {
		fields["kind"] = fe.Kind.String()
		if fe.StatusCode != 0 {
			fields["status"] = fe.StatusCode
		}
	}
	if errors.Is(err, context.Canceled) {
		c.log.WithFields(fields).Debug("fetch cancelled")
		return
	}
	c.log.WithFields(fields).WithError(err).Warn("fetch failed")
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

// number decodes a JSON number, numeric string, bool or null. Missing and
// unparseable values decode to 0.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch s {
	case "", "null", "false":
		*n = 0
		return nil
	case "true":
		*n = 1
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = number(f)
	return nil
}

func (n number) Float() float64 { return float64(n) }

func (n number) Int() int64 { return int64(n) }

// unixSeconds converts a seconds timestamp; 0 stays the zero time.
func unixSeconds(n number) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	return time.Unix(n.Int(), 0)
}

// unixMillis converts a milliseconds timestamp; 0 stays the zero time.
func unixMillis(n number) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(n.Int())
}

// trpcInput encodes a single-procedure tRPC batch input.
func trpcInput(input interface{}) (string, error) {
	b, err := json.Marshal(map[string]interface{}{
		"0": map[string]interface{}{"json": input},
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
