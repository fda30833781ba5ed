package analyzer

import (
	"fmt"

	"github.com/seo-optimizer/insights/models"
	"github.com/seo-optimizer/insights/rng"
)

// scoreBand is a noisy reading: base + rand[0, spread) clamped to [min, max]
type scoreBand struct {
	base, spread, min, max int
}

var (
	overallBand     = scoreBand{base: 60, spread: 30, min: 45, max: 95}
	densityBand     = scoreBand{base: 2, spread: 6, min: 1, max: 8}
	readabilityBand = scoreBand{base: 70, spread: 25, min: 50, max: 95}
	trendingBand    = scoreBand{base: 55, spread: 35, min: 40, max: 90}
)

func (b scoreBand) sample(r rng.Source) int {
	return clamp(b.base+r.Intn(b.spread), b.min, b.max)
}

// CalculateScores produces the four bounded scores for a request. The bands
// are independent of the text body.
func CalculateScores(r rng.Source, text string, kind models.Kind) (models.Scores, error) {
	if !kind.Valid() {
		return models.Scores{}, fmt.Errorf("score %q input: %w", kind, models.ErrInvalidInput)
	}

	return models.Scores{
		Overall:        overallBand.sample(r),
		KeywordDensity: densityBand.sample(r),
		Readability:    readabilityBand.sample(r),
		Trending:       trendingBand.sample(r),
	}, nil
}

// CompetitionLevelFor maps the overall score to a label. A higher score
// yields a lower competition label.
func CompetitionLevelFor(overall int) models.CompetitionLevel {
	switch {
	case overall <= 50:
		return models.CompetitionHigh
	case overall <= 75:
		return models.CompetitionMedium
	default:
		return models.CompetitionLow
	}
}

// Fingerprint joins the score tuple into the cache key component
func Fingerprint(s models.Scores) string {
	return fmt.Sprintf("%d-%d-%d-%d", s.Overall, s.KeywordDensity, s.Readability, s.Trending)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
