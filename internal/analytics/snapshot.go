package analytics

import (
	"math"

	"github.com/zyphh/mindly/internal/api"
)

// Snapshot is the derived analytics bundle backing every chart. It is
// rebuilt wholesale from one completed set of fetches; the charts never
// see a mix of two fetch generations.
type Snapshot struct {
	Mood         []api.MoodPoint
	Distribution api.Distribution
	Weekly       []api.WeekSummary
}

// NewSnapshot assembles a snapshot from the three analytics payloads.
// Mood scores are clamped to [-1, 1]; the service should already respect
// that range, but a chart row index must not depend on it.
func NewSnapshot(mood []api.MoodPoint, dist api.Distribution, weekly []api.WeekSummary) Snapshot {
	clamped := make([]api.MoodPoint, len(mood))
	for i, p := range mood {
		p.Score = clampScore(p.Score)
		clamped[i] = p
	}
	return Snapshot{Mood: clamped, Distribution: dist, Weekly: weekly}
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return math.Max(-1, math.Min(1, s))
}

// Total returns the number of entries behind a distribution.
func Total(d api.Distribution) int {
	return d.Positive + d.Neutral + d.Negative
}

// Percentages returns whole-number percentages for the three labels.
// An empty window yields zeros rather than a division by zero.
func Percentages(d api.Distribution) (positive, neutral, negative int) {
	total := Total(d)
	if total == 0 {
		return 0, 0, 0
	}
	positive = int(math.Round(float64(d.Positive) / float64(total) * 100))
	neutral = int(math.Round(float64(d.Neutral) / float64(total) * 100))
	negative = int(math.Round(float64(d.Negative) / float64(total) * 100))
	return positive, neutral, negative
}
