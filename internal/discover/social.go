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

// SocialAdapter searches Reddit's public JSON API for discussion of the
// claim. Reddit covers both the forum and the social-amplification angle
// without requiring credentials.
type SocialAdapter struct {
	Client *http.Client
	Limit  int
}

func (a *SocialAdapter) Name() string                 { return "social" }
func (a *SocialAdapter) SourceType() model.SourceType { return model.SourceTypeSocialMedia }

func (a *SocialAdapter) Discover(ctx context.Context, analysis *preprocess.Analysis) []model.DiscoveryCandidate {
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	query := analysis.Claim.Text
	if len(analysis.Keywords) >= 4 {
		query = strings.Join(analysis.Keywords[:4], " ")
	}

	u := "https://www.reddit.com/search.json?q=" + url.QueryEscape(query) +
		"&sort=relevance&limit=" + strconv.Itoa(a.Limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "veridict/0.2")

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var raw struct {
		Data struct {
			Children []struct {
				Data struct {
					Title       string  `json:"title"`
					Selftext    string  `json:"selftext"`
					Permalink   string  `json:"permalink"`
					Author      string  `json:"author"`
					Subreddit   string  `json:"subreddit"`
					Score       int64   `json:"score"`
					NumComments int64   `json:"num_comments"`
					CreatedUTC  float64 `json:"created_utc"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil
	}

	var out []model.DiscoveryCandidate
	for i, child := range raw.Data.Children {
		if i >= a.Limit {
			break
		}
		post := child.Data
		created := time.Unix(int64(post.CreatedUTC), 0).UTC()
		desc := post.Selftext
		if len(desc) > 300 {
			desc = desc[:300]
		}
		out = append(out, model.DiscoveryCandidate{
			URL:         "https://www.reddit.com" + post.Permalink,
			Title:       post.Title,
			Description: desc,
			Author:      post.Author,
			SourceName:  "r/" + post.Subreddit,
			SourceType:  model.SourceTypeForum,
			Platform:    "reddit",
			Credibility: CredibilityFor("https://www.reddit.com" + post.Permalink),
			PublishedAt: &created,
			Engagement: &model.Engagement{
				Likes:    post.Score,
				Comments: post.NumComments,
			},
		})
	}
	return out
}
