// Package fetch retrieves pages and images from the target site.
package fetch

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cicekzamani/catalog/config"
	"github.com/gocolly/colly/v2"
)

// Fetcher retrieves the raw HTML of a page. Client implements it with a
// plain HTTP strategy; pages that only materialize client side need a
// browser-rendered implementation behind the same contract.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client is a sequential HTTP client built on a colly collector. The
// collector carries the browser-like headers, the per-request timeout and
// the inter-request delay policy (fixed delay plus random jitter).
type Client struct {
	collector       *colly.Collector
	maxRetries      int
	retryBackoff    time.Duration
	retryBackoffMax time.Duration
}

type slot struct {
	body   []byte
	status int
}

const slotKey = "slot"

// New builds a client configured from cfg.
func New(cfg *config.Config) (*Client, error) {
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	}); err != nil {
		return nil, err
	}

	collector.OnRequest(func(r *colly.Request) {
		if r.Headers.Get("Accept") == "" {
			r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		}
		if r.Headers.Get("Accept-Language") == "" {
			r.Headers.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		if s, ok := r.Ctx.GetAny(slotKey).(*slot); ok {
			s.status = r.StatusCode
			s.body = r.Body
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r == nil || r.Ctx == nil {
			return
		}
		if s, ok := r.Ctx.GetAny(slotKey).(*slot); ok {
			s.status = r.StatusCode
		}
	})

	return &Client{
		collector:       collector,
		maxRetries:      cfg.MaxRetries,
		retryBackoff:    cfg.RetryBackoff,
		retryBackoffMax: cfg.RetryBackoffMax,
	}, nil
}

// WithTransport swaps the underlying round tripper. Used by tests.
func (c *Client) WithTransport(rt http.RoundTripper) {
	c.collector.WithTransport(rt)
}

// Fetch retrieves a page, retrying with exponential backoff up to the
// configured budget. It returns the raw body or a classified *Error.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &Error{URL: url, Kind: KindOther, Cause: err}
		}
		body, err := c.do(url, nil)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt < c.maxRetries {
			delay := c.backoff(attempt + 1)
			slog.Debug("fetch retry scheduled",
				slog.String("url", url),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", delay),
				slog.Any("error", err),
			)
			select {
			case <-ctx.Done():
				return nil, &Error{URL: url, Kind: KindOther, Cause: ctx.Err()}
			case <-time.After(delay):
			}
		}
	}
	return nil, lastErr
}

// Download fetches a binary resource with a Referer header and writes it to
// dest. Downloads are single-shot: a failed image is reported, not retried.
func (c *Client) Download(ctx context.Context, url, referer, dest string) error {
	if err := ctx.Err(); err != nil {
		return &Error{URL: url, Kind: KindOther, Cause: err}
	}

	hdr := http.Header{}
	hdr.Set("Accept", "image/avif,image/webp,image/apng,*/*;q=0.8")
	if referer != "" {
		hdr.Set("Referer", referer)
	}

	body, err := c.do(url, hdr)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, body, 0o644)
}

func (c *Client) do(url string, hdr http.Header) ([]byte, error) {
	s := &slot{}
	cctx := colly.NewContext()
	cctx.Put(slotKey, s)

	if err := c.collector.Request(http.MethodGet, url, nil, cctx, hdr); err != nil {
		return nil, &Error{URL: url, Kind: Classify(err, s.status), Cause: err}
	}
	return s.body, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	base := c.retryBackoff
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	delay := base * time.Duration(1<<(attempt-1))
	if max := c.retryBackoffMax; max > 0 && delay > max {
		delay = max
	}
	return delay
}
