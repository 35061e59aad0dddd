package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultBaseURL    = "http://127.0.0.1:8000"
	defaultCSRFCookie = "csrftoken"
	defaultCSRFHeader = "X-CSRFToken"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// CSRFCookie names the cookie the anti-forgery token is read from and
	// CSRFHeader the header it is sent in.
	CSRFCookie string
	CSRFHeader string

	// SessionCookie and Session seed the jar with an authenticated session.
	SessionCookie string
	Session       string
	// CSRFToken seeds the jar with a token when none has been set by the
	// server yet.
	CSRFToken string

	// Retries is how many times a read is retried after a network or
	// server error. Mutations are never retried.
	Retries int
	// RetryWait is the first retry delay; it grows exponentially.
	RetryWait time.Duration

	Jar       http.CookieJar
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Client talks to the document server's page API.
type Client struct {
	base       *url.URL
	http       *http.Client
	csrfCookie string
	csrfHeader string
	retries    uint64
	retryWait  time.Duration
	log        *zap.Logger
}

// New creates a Client. An empty BaseURL selects the local development
// server.
func New(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = defaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}

	jar := opts.Jar
	if jar == nil {
		jar, err = cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
	}

	c := &Client{
		base:       base,
		csrfCookie: opts.CSRFCookie,
		csrfHeader: opts.CSRFHeader,
		retryWait:  opts.RetryWait,
		log:        opts.Logger,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
			Jar:       jar,
		},
	}
	if c.csrfCookie == "" {
		c.csrfCookie = defaultCSRFCookie
	}
	if c.csrfHeader == "" {
		c.csrfHeader = defaultCSRFHeader
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.Retries > 0 {
		c.retries = uint64(opts.Retries)
	}
	if c.retryWait <= 0 {
		c.retryWait = 200 * time.Millisecond
	}

	var seed []*http.Cookie
	if opts.Session != "" && opts.SessionCookie != "" {
		seed = append(seed, &http.Cookie{Name: opts.SessionCookie, Value: opts.Session, Path: "/"})
	}
	if opts.CSRFToken != "" && c.csrfToken() == "" {
		seed = append(seed, &http.Cookie{Name: c.csrfCookie, Value: opts.CSRFToken, Path: "/"})
	}
	if len(seed) > 0 {
		jar.SetCookies(base, seed)
	}

	return c, nil
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// csrfToken reads the anti-forgery token from the cookie jar.
func (c *Client) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == c.csrfCookie {
			return ck.Value
		}
	}
	return ""
}

// safeMethod reports whether the method is exempt from CSRF protection.
func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// do executes the request with the standard headers. Every non-safe request
// carries the CSRF token; without one the request is not sent.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if !safeMethod(req.Method) {
		token := c.csrfToken()
		if token == "" {
			return nil, ErrMissingCSRFToken
		}
		req.Header.Set(c.csrfHeader, token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, err
	}
	c.log.Debug("request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.RequestURI()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))
	return resp, nil
}

// doJSON sends a request and decodes the JSON response into out. Safe
// requests are retried on transient errors.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	if !safeMethod(method) || c.retries == 0 {
		return c.roundTrip(ctx, method, url, body, out)
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryWait
	b := backoff.WithContext(backoff.WithMaxRetries(eb, c.retries), ctx)
	return backoff.RetryNotify(func() error {
		err := c.roundTrip(ctx, method, url, body, out)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		c.log.Info("retrying request",
			zap.String("method", method),
			zap.Duration("wait", wait),
			zap.Error(err))
	})
}

func (c *Client) roundTrip(ctx context.Context, method, url string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(req, resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// url builds an API URL from path segments.
func (c *Client) url(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.base.String() + "/" + strings.Join(escaped, "/")
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &Error{
		Method: req.Method,
		Path:   req.URL.Path,
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}
