package synthesis

import "github.com/ppiankov/veridict/internal/model"

// Sentiment thresholds for stance classification.
const (
	supportThreshold    = 0.2
	contradictThreshold = -0.2
)

// Categorize partitions evidence into supporting, contradicting and neutral
// buckets by sentiment. Every item lands in exactly one bucket.
func Categorize(evidence []model.Evidence) model.EvidenceBuckets {
	buckets := model.EvidenceBuckets{
		Supporting:    []model.Evidence{},
		Contradicting: []model.Evidence{},
		Neutral:       []model.Evidence{},
	}
	for _, ev := range evidence {
		switch {
		case ev.Sentiment > supportThreshold:
			buckets.Supporting = append(buckets.Supporting, ev)
		case ev.Sentiment < contradictThreshold:
			buckets.Contradicting = append(buckets.Contradicting, ev)
		default:
			buckets.Neutral = append(buckets.Neutral, ev)
		}
	}
	return buckets
}
