package discover

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/preprocess"
)

// AcademicAdapter queries the Crossref works API. No API key required.
type AcademicAdapter struct {
	Client   *http.Client
	Endpoint string // defaults to the public Crossref works endpoint
	Limit    int
}

func (a *AcademicAdapter) Name() string                 { return "academic" }
func (a *AcademicAdapter) SourceType() model.SourceType { return model.SourceTypeAcademic }

func (a *AcademicAdapter) Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	query := strings.Join(analysis.Keywords, " ")
	if query == "" {
		query = analysis.Claim.Text
	}

	endpoint := a.Endpoint
	if endpoint == "" {
		endpoint = "https://api.crossref.org/works"
	}
	u := endpoint + "?query=" + url.QueryEscape(query) + "&rows=" + strconv.Itoa(a.Limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var raw struct {
		Message struct {
			Items []struct {
				Title  []string `json:"title"`
				URL    string   `json:"URL"`
				Author []struct {
					Given  string `json:"given"`
					Family string `json:"family"`
				} `json:"author"`
				Issued struct {
					DateParts [][]int `json:"date-parts"`
				} `json:"issued"`
				Publisher string `json:"publisher"`
			} `json:"items"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil
	}

	var out []model.DiscoveryCandidate
	for _, item := range raw.Message.Items {
		if len(out) >= a.Limit {
			break
		}
		// Crossref occasionally returns records without a resolvable URL.
		if item.URL == "" {
			continue
		}
		cand := model.DiscoveryCandidate{
			URL:         item.URL,
			SourceName:  item.Publisher,
			SourceType:  model.SourceTypeAcademic,
			Credibility: 8.0,
			Verified:    true,
		}
		if len(item.Title) > 0 {
			cand.Title = item.Title[0]
		}
		if len(item.Author) > 0 {
			cand.Author = strings.TrimSpace(item.Author[0].Given + " " + item.Author[0].Family)
		}
		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) >= 1 {
			parts := item.Issued.DateParts[0]
			year, month, day := parts[0], 1, 1
			if len(parts) > 1 {
				month = parts[1]
			}
			if len(parts) > 2 {
				day = parts[2]
			}
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			cand.PublishedAt = &t
		}
		out = append(out, cand)
	}
	return out
}
