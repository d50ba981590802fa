package discover

import (
	"net/url"
	"strings"

	"github.com/ppiankov/veridict/internal/model"
)

// Provisional credibility by domain. Fact-checking organizations and official
// registries sit at the top; unknown domains get a neutral default.
var domainCredibility = map[string]float64{
	"snopes.com":         9.5,
	"politifact.com":     9.5,
	"factcheck.org":      9.5,
	"fullfact.org":       9.0,
	"apnews.com":         9.0,
	"reuters.com":        9.0,
	"bbc.com":            8.5,
	"bbc.co.uk":          8.5,
	"nytimes.com":        8.0,
	"washingtonpost.com": 8.0,
	"theguardian.com":    8.0,
	"nature.com":         9.5,
	"science.org":        9.5,
	"nih.gov":            9.5,
	"cdc.gov":            9.5,
	"who.int":            9.5,
	"arxiv.org":          8.0,
	"wikipedia.org":      7.0,
	"reddit.com":         4.0,
	"twitter.com":        3.5,
	"x.com":              3.5,
	"facebook.com":       3.0,
	"instagram.com":      3.0,
	"tiktok.com":         2.5,
	"youtube.com":        4.0,
	"medium.com":         4.5,
}

const defaultCredibility = 5.0

// CredibilityFor returns the provisional 0-10 trust rating for a URL's
// domain. Subdomains inherit their parent domain's rating; government and
// academic suffixes rate high even when unlisted.
func CredibilityFor(rawURL string) float64 {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return defaultCredibility
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	if score, ok := domainCredibility[host]; ok {
		return score
	}
	for domain, score := range domainCredibility {
		if strings.HasSuffix(host, "."+domain) {
			return score
		}
	}
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return 9.0
	}
	if strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return 8.5
	}
	return defaultCredibility
}

// TypeFor guesses the source category from a URL when the adapter cannot
// supply one directly.
func TypeFor(rawURL string) model.SourceType {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.SourceTypeWeb
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	switch {
	case hostIsAny(host, "snopes.com", "politifact.com", "factcheck.org", "fullfact.org"):
		return model.SourceTypeFactCheck
	case hostIsAny(host, "twitter.com", "x.com", "facebook.com", "instagram.com", "tiktok.com"):
		return model.SourceTypeSocialMedia
	case hostIsAny(host, "reddit.com"):
		return model.SourceTypeForum
	case hostIsAny(host, "youtube.com", "vimeo.com"):
		return model.SourceTypeVideo
	case hostIsAny(host, "arxiv.org", "nature.com", "science.org") || strings.HasSuffix(host, ".edu"):
		return model.SourceTypeAcademic
	case strings.HasSuffix(host, ".gov") || hostIsAny(host, "who.int", "cdc.gov", "nih.gov"):
		return model.SourceTypeOfficial
	case hostIsAny(host, "apnews.com", "reuters.com", "bbc.com", "bbc.co.uk", "nytimes.com", "washingtonpost.com", "theguardian.com", "cnn.com"):
		return model.SourceTypeNews
	case hostIsAny(host, "medium.com", "substack.com", "wordpress.com", "blogspot.com"):
		return model.SourceTypeBlog
	default:
		return model.SourceTypeWeb
	}
}

func hostIsAny(host string, domains ...string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
