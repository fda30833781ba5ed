package analyzer

import (
	"time"

	"github.com/google/uuid"

	"github.com/seo-optimizer/insights/competitor"
	"github.com/seo-optimizer/insights/models"
)

var fallbackScores = models.Scores{
	Overall:        50,
	KeywordDensity: 2,
	Readability:    60,
	Trending:       50,
}

// Fallback builds the fixed result returned when the pipeline fails. Every
// field is populated so callers can render it like any other result.
func Fallback(req models.AnalysisRequest, now time.Time) *models.AnalysisResult {
	return &models.AnalysisResult{
		ID:               uuid.NewString(),
		AnalysisKind:     req.AnalysisKind,
		URL:              req.URL,
		AnalyzedAt:       now,
		OverallScore:     fallbackScores.Overall,
		KeywordDensity:   fallbackScores.KeywordDensity,
		ReadabilityScore: fallbackScores.Readability,
		TrendingScore:    fallbackScores.Trending,
		CompetitionLevel: CompetitionLevelFor(fallbackScores.Overall),
		SearchVolume:     searchVolumeBase,
		Keywords:         []string{"seo optimization", "content strategy", "digital marketing"},
		Hashtags:         []string{"#SEO", "#ContentMarketing", "#DigitalMarketing"},
		TrendingTags:     []string{"#SEOTips", "#MarketingStrategy"},
		Insights: models.Insights{
			Strengths:  []string{"Content submitted for analysis"},
			Weaknesses: []string{"Detailed analysis is temporarily unavailable"},
			Recommendations: []string{
				"Run the analysis again for tailored recommendations",
				"Use clear headings and short paragraphs",
				"Include your target keywords naturally in the text",
			},
		},
		CompetitorAnalysis: competitor.Fallback(fallbackScores.Overall),
		Fallback:           true,
	}
}
