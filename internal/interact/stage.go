package interact

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/veridict/internal/model"
)

// Domains whose pages only render meaningful content under script
// execution. Evidence from anywhere else skips this stage.
var scriptedDomains = map[string]bool{
	"twitter.com":   true,
	"x.com":         true,
	"facebook.com":  true,
	"instagram.com": true,
	"tiktok.com":    true,
	"reddit.com":    true,
	"threads.net":   true,
}

// Renderer is the scripted-interaction capability: fetch a page with a real
// browser, wait for content, scroll, and return the rendered text. An error
// means the original evidence stays untouched.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Stage re-fetches social-platform evidence through the scripted channel and
// merges richer content into the existing records.
type Stage struct {
	renderer  Renderer
	perCall   time.Duration
	extractFn func(content string) []string // sub-claim extraction over rendered text
	logger    *log.Logger
}

// NewStage creates the interaction stage. extractFn extracts sub-claims from
// rendered content; it is injected so the stage does not depend on the
// access package.
func NewStage(renderer Renderer, perCall time.Duration, extractFn func(string) []string, logger *log.Logger) *Stage {
	return &Stage{renderer: renderer, perCall: perCall, extractFn: extractFn, logger: logger}
}

// NeedsInteraction reports whether the URL's domain requires scripted
// rendering.
func NeedsInteraction(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if scriptedDomains[host] {
		return true
	}
	for domain := range scriptedDomains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Enrich runs the scripted channel over every evidence item that needs it
// and merges the results in place. Content is replaced when the rendered
// version is richer; sub-claims are appended and deduplicated; credibility
// and sentiment never change. Failures leave the original record untouched.
// With zero qualifying items Enrich returns immediately.
func (s *Stage) Enrich(ctx context.Context, evidence []model.Evidence) []model.Evidence {
	if s.renderer == nil {
		return evidence
	}

	var targets []int
	for i, ev := range evidence {
		if NeedsInteraction(ev.URL) {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return evidence
	}

	for _, idx := range targets {
		select {
		case <-ctx.Done():
			return evidence
		default:
		}

		callCtx, cancel := context.WithTimeout(ctx, s.perCall)
		content, err := s.renderer.Render(callCtx, evidence[idx].URL)
		cancel()
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("interaction skipped for %s: %v", evidence[idx].URL, err)
			}
			continue
		}
		s.merge(&evidence[idx], content)
	}
	return evidence
}

func (s *Stage) merge(ev *model.Evidence, rendered string) {
	rendered = strings.TrimSpace(rendered)
	if len(rendered) <= len(ev.Content) {
		return
	}
	ev.Content = rendered

	if s.extractFn == nil {
		return
	}
	seen := make(map[string]bool, len(ev.Claims))
	for _, c := range ev.Claims {
		seen[c] = true
	}
	for _, c := range s.extractFn(rendered) {
		if !seen[c] {
			ev.Claims = append(ev.Claims, c)
			seen[c] = true
		}
	}
}
