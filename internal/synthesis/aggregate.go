package synthesis

import (
	"sort"

	"github.com/ppiankov/veridict/internal/model"
)

const (
	highCredibilityFloor = 8.0
	maxKeyEvents         = 5
)

// Platforms whose evidence counts toward social signals even when the
// source type is not explicitly social.
var socialPlatforms = map[string]bool{
	"twitter": true, "x": true, "facebook": true, "instagram": true,
	"tiktok": true, "reddit": true, "youtube": true, "threads": true,
}

// SourceStats summarizes platforms, credibility and verification across the
// evidence set.
func SourceStats(evidence []model.Evidence) model.SourceStats {
	stats := model.SourceStats{
		Total:      len(evidence),
		ByPlatform: make(map[string]int),
	}
	for _, ev := range evidence {
		stats.ByPlatform[ev.PlatformOrSource()]++
		if ev.Credibility >= highCredibilityFloor {
			stats.HighCredibility++
		}
		if ev.Verified {
			stats.Verified++
		}
	}
	return stats
}

// BuildTimeline reduces dated evidence to earliest/latest bounds plus up to
// five key events, preferring high-credibility recent items.
func BuildTimeline(evidence []model.Evidence) model.Timeline {
	var dated []model.Evidence
	for _, ev := range evidence {
		if ev.PublishedAt != nil {
			dated = append(dated, ev)
		}
	}
	if len(dated) == 0 {
		return model.Timeline{}
	}

	sort.Slice(dated, func(i, j int) bool {
		return dated[i].PublishedAt.Before(*dated[j].PublishedAt)
	})

	timeline := model.Timeline{
		Earliest: dated[0].PublishedAt,
		Latest:   dated[len(dated)-1].PublishedAt,
	}

	ranked := make([]model.Evidence, len(dated))
	copy(ranked, dated)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Credibility != ranked[j].Credibility {
			return ranked[i].Credibility > ranked[j].Credibility
		}
		return ranked[i].PublishedAt.After(*ranked[j].PublishedAt)
	})

	for i, ev := range ranked {
		if i >= maxKeyEvents {
			break
		}
		timeline.KeyEvents = append(timeline.KeyEvents, model.KeyEvent{
			Date:        *ev.PublishedAt,
			Title:       ev.Title,
			URL:         ev.URL,
			SourceName:  ev.SourceName,
			Credibility: ev.Credibility,
		})
	}
	sort.Slice(timeline.KeyEvents, func(i, j int) bool {
		return timeline.KeyEvents[i].Date.Before(timeline.KeyEvents[j].Date)
	})
	return timeline
}

// SocialSignalsFor aggregates engagement over social, video and forum
// evidence. Sentiment uses a 1.5x dominance rule between positive and
// negative stance counts; virality combines engagement volume with platform
// spread.
func SocialSignalsFor(evidence []model.Evidence, buckets model.EvidenceBuckets) model.SocialSignals {
	var engagementSum int64
	platforms := make(map[string]bool)
	influencers := 0

	for _, ev := range evidence {
		if !isSocial(ev) {
			continue
		}
		platforms[ev.PlatformOrSource()] = true
		if ev.Engagement != nil {
			engagementSum += ev.Engagement.Total()
		}
		if ev.Verified {
			influencers++
		}
	}

	virality := float64(engagementSum)/500 + 3*float64(len(platforms))
	if virality > 100 {
		virality = 100
	}

	return model.SocialSignals{
		TotalEngagement:    engagementSum,
		Sentiment:          sentimentLabel(len(buckets.Supporting), len(buckets.Contradicting)),
		ViralityScore:      virality,
		InfluencerMentions: influencers,
	}
}

func isSocial(ev model.Evidence) bool {
	switch ev.SourceType {
	case model.SourceTypeSocialMedia, model.SourceTypeVideo, model.SourceTypeForum:
		return true
	}
	return socialPlatforms[ev.Platform]
}

func sentimentLabel(positive, negative int) string {
	switch {
	case positive == 0 && negative == 0:
		return "neutral"
	case float64(positive) > 1.5*float64(negative):
		return "positive"
	case float64(negative) > 1.5*float64(positive):
		return "negative"
	default:
		return "mixed"
	}
}
