package access

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/ppiankov/veridict/internal/cache"
	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/util"
	"github.com/ppiankov/veridict/internal/worker"
)

// Fetcher retrieves page content over plain HTTP. Robots compliance, a
// per-domain rate limit and the page cache all sit on this path; the
// scripted-interaction stage has its own channel.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pages      cache.Cache
	cacheTTL   time.Duration
}

// NewFetcher creates a Fetcher from config. pages may be nil to disable
// caching.
func NewFetcher(cfg *model.Config, pages cache.Cache) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.HTTP.RatePerDomain, cfg.HTTP.RateBurst),
		pages:     pages,
		cacheTTL:  cfg.Cache.TTL,
	}
	if cfg.HTTP.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	return f
}

// Fetch retrieves the raw HTML for a URL. A nil error with empty content
// never happens: any failure (robots denial, network error, bad status)
// returns an error and the candidate is dropped.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.pages != nil {
		if body, ok := f.pages.Get(cache.Key(rawURL)); ok {
			return string(body), nil
		}
	}

	if f.robots != nil && !f.robots.CanFetch(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Transcode legacy encodings to UTF-8 before parsing.
	reader, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.pages != nil {
		_ = f.pages.Set(cache.Key(rawURL), body, f.cacheTTL)
	}
	return string(body), nil
}
