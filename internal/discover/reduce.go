package discover

import (
	"net/url"
	"sort"
	"strings"

	"github.com/ppiankov/veridict/internal/model"
)

// Reduce deduplicates candidates by normalized URL (keeping the
// higher-credibility duplicate), sorts them into the fixed total order and
// truncates to max. Reduce is idempotent: applying it twice yields the same
// list.
func Reduce(candidates []model.DiscoveryCandidate, max int) []model.DiscoveryCandidate {
	byURL := make(map[string]model.DiscoveryCandidate, len(candidates))
	order := make([]string, 0, len(candidates))

	for _, c := range candidates {
		key := NormalizeURL(c.URL)
		existing, seen := byURL[key]
		if !seen {
			byURL[key] = c
			order = append(order, key)
			continue
		}
		if c.Credibility > existing.Credibility {
			byURL[key] = c
		}
	}

	deduped := make([]model.DiscoveryCandidate, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, byURL[key])
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return lessRanked(deduped[i], deduped[j])
	})

	if max > 0 && len(deduped) > max {
		deduped = deduped[:max]
	}
	return deduped
}

// lessRanked is the total order over candidates: credibility desc, source
// type priority desc, verified desc, then normalized URL asc so equal
// candidates still sort deterministically.
func lessRanked(a, b model.DiscoveryCandidate) bool {
	if a.Credibility != b.Credibility {
		return a.Credibility > b.Credibility
	}
	if pa, pb := a.SourceType.Priority(), b.SourceType.Priority(); pa != pb {
		return pa > pb
	}
	if a.Verified != b.Verified {
		return a.Verified
	}
	return NormalizeURL(a.URL) < NormalizeURL(b.URL)
}

// NormalizeURL strips query parameters and fragments, lowercases the host
// and drops a trailing slash. It is the deduplication key for candidates
// and evidence.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return strings.TrimSuffix(rawURL, "/")
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Host = strings.TrimPrefix(parsed.Host, "www.")
	normalized := parsed.String()
	return strings.TrimSuffix(normalized, "/")
}
