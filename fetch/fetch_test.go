package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"github.com/cicekzamani/catalog/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Delay = 0
	cfg.RandomDelay = 0
	cfg.MaxRetries = 2
	cfg.RetryBackoff = time.Millisecond
	cfg.RetryBackoffMax = 5 * time.Millisecond
	return cfg
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		expected   Kind
	}{
		{name: "context timeout", err: context.DeadlineExceeded, expected: KindTimeout},
		{name: "net timeout", err: &net.DNSError{IsTimeout: true}, expected: KindTimeout},
		{name: "connection", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, expected: KindConnection},
		{name: "forbidden", err: errors.New("Forbidden"), statusCode: http.StatusForbidden, expected: KindForbidden},
		{name: "not found", err: errors.New("Not Found"), statusCode: http.StatusNotFound, expected: KindNotFound},
		{name: "rate limited", err: errors.New("Too Many Requests"), statusCode: http.StatusTooManyRequests, expected: KindRateLimited},
		{name: "other", err: errors.New("some other error"), expected: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err, tt.statusCode); got != tt.expected {
				t.Fatalf("Classify(%v, %d) = %q, want %q", tt.err, tt.statusCode, got, tt.expected)
			}
		})
	}
}

func TestErrKind(t *testing.T) {
	err := &Error{URL: "http://example.test/", Kind: KindForbidden, Cause: errors.New("Forbidden")}
	if got := ErrKind(err); got != KindForbidden {
		t.Fatalf("ErrKind = %q, want %q", got, KindForbidden)
	}
	if got := ErrKind(errors.New("plain")); got != KindOther {
		t.Fatalf("ErrKind on plain error = %q, want %q", got, KindOther)
	}
}

func TestFetchRetriesUntilSuccess(t *testing.T) {
	const url = "http://example.test/page"

	client, err := New(testConfig())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	calls := 0
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", url, func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		return httpmock.NewStringResponse(http.StatusOK, "<html>ok</html>"), nil
	})
	client.WithTransport(transport)

	body, err := client.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Fatalf("body = %q", body)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestFetchExhaustsRetryBudget(t *testing.T) {
	const url = "http://example.test/broken"

	cfg := testConfig()
	cfg.MaxRetries = 2
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	calls := 0
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", url, func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection reset")
	})
	client.WithTransport(transport)

	if _, err := client.Fetch(context.Background(), url); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

func TestFetchClassifiesStatus(t *testing.T) {
	const url = "http://example.test/forbidden"

	cfg := testConfig()
	cfg.MaxRetries = 0
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", url, httpmock.NewStringResponder(http.StatusForbidden, ""))
	client.WithTransport(transport)

	_, err = client.Fetch(context.Background(), url)
	if err == nil {
		t.Fatalf("expected error for 403")
	}
	if got := ErrKind(err); got != KindForbidden {
		t.Fatalf("kind = %q, want %q", got, KindForbidden)
	}
}

func TestFetchHonoursCancelledContext(t *testing.T) {
	client, err := New(testConfig())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Fetch(ctx, "http://example.test/"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestDownloadWritesFileWithReferer(t *testing.T) {
	const (
		url     = "http://cdn.example.test/1.jpg"
		referer = "http://example.test/product"
	)

	cfg := testConfig()
	cfg.MaxRetries = 0
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	gotReferer := ""
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", url, func(req *http.Request) (*http.Response, error) {
		gotReferer = req.Header.Get("Referer")
		return httpmock.NewBytesResponse(http.StatusOK, []byte{0xff, 0xd8, 0xff}), nil
	})
	client.WithTransport(transport)

	dest := filepath.Join(t.TempDir(), "1.jpg")
	if err := client.Download(context.Background(), url, referer, dest); err != nil {
		t.Fatalf("download: %v", err)
	}

	if gotReferer != referer {
		t.Fatalf("referer = %q, want %q", gotReferer, referer)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("downloaded %d bytes, want 3", len(data))
	}
}
