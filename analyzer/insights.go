package analyzer

import (
	"fmt"

	"github.com/seo-optimizer/insights/models"
)

// InsightInput carries everything the insight rules look at
type InsightInput struct {
	Scores           models.Scores
	CompetitionLevel models.CompetitionLevel
	Features         models.TextFeatures
	Kind             models.Kind
	URL              string
}

// rule appends message(in) when when(in) holds
type rule struct {
	when    func(in InsightInput) bool
	message func(in InsightInput) string
}

func fixed(s string) func(InsightInput) string {
	return func(InsightInput) string { return s }
}

// Structural rules come first so a well-formed document is credited for its
// structure before the score-based entries fill the cap.
var strengthRules = []rule{
	{when: func(in InsightInput) bool { return in.Features.HasHeaders },
		message: fixed("Well-structured content with clear headers")},
	{when: func(in InsightInput) bool { return in.Features.HasBulletPoints },
		message: fixed("Uses lists to improve scannability")},
	{when: func(in InsightInput) bool { return in.Features.HasLinks },
		message: fixed("Includes links that support credibility and navigation")},
	{when: func(in InsightInput) bool { return in.Features.HasNumbers },
		message: fixed("Backs claims with numbers and data points")},
	{when: func(in InsightInput) bool { return in.Scores.Overall >= 80 },
		message: fixed("Excellent overall SEO score")},
	{when: func(in InsightInput) bool { return in.Scores.Overall >= 70 && in.Scores.Overall < 80 },
		message: fixed("Good overall SEO foundation")},
	{when: func(in InsightInput) bool { return in.Scores.KeywordDensity >= 2 && in.Scores.KeywordDensity <= 5 },
		message: func(in InsightInput) string {
			return fmt.Sprintf("Keyword density of %d%% is in the optimal range", in.Scores.KeywordDensity)
		}},
	{when: func(in InsightInput) bool { return in.Scores.Readability >= 80 },
		message: fixed("Highly readable content")},
	{when: func(in InsightInput) bool { return in.Scores.Readability >= 70 && in.Scores.Readability < 80 },
		message: fixed("Good readability for a general audience")},
	{when: func(in InsightInput) bool { return in.Scores.Trending >= 75 },
		message: fixed("Strong alignment with trending topics")},
	{when: func(in InsightInput) bool { return in.Features.WordCount >= 1000 && in.Features.WordCount <= 2500 },
		message: func(in InsightInput) string {
			return fmt.Sprintf("Comprehensive length (%d words) suits in-depth ranking", in.Features.WordCount)
		}},
	{when: func(in InsightInput) bool {
		return in.Features.WordCount >= 500 && (in.Features.WordCount < 1000 || in.Features.WordCount > 2500)
	},
		message: fixed("Solid content length")},
	{when: func(in InsightInput) bool { return in.Kind == models.KindWebsite && in.URL != "" },
		message: fixed("Website URL available for technical review")},
	{when: func(in InsightInput) bool { return in.Kind == models.KindKeyword },
		message: fixed("Focused keyword input enables precise targeting")},
	{when: func(in InsightInput) bool { return in.Kind == models.KindCompetitor },
		message: fixed("Competitive context included in the analysis")},
}

var weaknessRules = []rule{
	{when: func(in InsightInput) bool { return in.Scores.Overall < 50 },
		message: fixed("Overall SEO score needs significant improvement")},
	{when: func(in InsightInput) bool { return in.Scores.Overall >= 50 && in.Scores.Overall < 70 },
		message: fixed("Overall SEO score has room to improve")},
	{when: func(in InsightInput) bool { return in.Scores.KeywordDensity < 1 },
		message: fixed("Keyword density is too low")},
	{when: func(in InsightInput) bool { return in.Scores.KeywordDensity > 6 },
		message: fixed("Keyword density is high enough to risk keyword stuffing")},
	{when: func(in InsightInput) bool { return in.Scores.Readability < 60 },
		message: fixed("Content is difficult to read")},
	{when: func(in InsightInput) bool { return in.Scores.Readability >= 60 && in.Scores.Readability < 70 },
		message: fixed("Readability could be improved")},
	{when: func(in InsightInput) bool { return in.Scores.Trending < 50 },
		message: fixed("Weak alignment with trending topics")},
	{when: func(in InsightInput) bool { return !in.Features.HasHeaders },
		message: fixed("Missing headers to structure the content")},
	{when: func(in InsightInput) bool { return !in.Features.HasBulletPoints },
		message: fixed("No lists to break up dense text")},
	{when: func(in InsightInput) bool { return !in.Features.HasLinks },
		message: fixed("No internal or external links")},
	{when: func(in InsightInput) bool { return in.Features.WordCount < 300 },
		message: func(in InsightInput) string {
			return fmt.Sprintf("Content is too short (%d words)", in.Features.WordCount)
		}},
	{when: func(in InsightInput) bool { return in.Features.WordCount > 3000 },
		message: fixed("Content may be too long to hold reader attention")},
	{when: func(in InsightInput) bool { return in.Features.AvgWordsPerSentence > 25 },
		message: fixed("Sentences are too long on average")},
	{when: func(in InsightInput) bool {
		return in.Features.SentenceCount > 0 && in.Features.AvgWordsPerSentence < 8
	},
		message: fixed("Sentences are very short and may feel choppy")},
	{when: func(in InsightInput) bool { return in.CompetitionLevel == models.CompetitionHigh },
		message: fixed("High competition for this topic")},
}

var recommendationRules = []rule{
	{when: func(in InsightInput) bool { return in.Scores.Overall < 50 },
		message: fixed("Rework the content around a single clear topic and search intent")},
	{when: func(in InsightInput) bool { return in.Scores.Overall >= 50 && in.Scores.Overall < 70 },
		message: fixed("Strengthen on-page basics: title, meta description and focus keyword placement")},
	{when: func(in InsightInput) bool { return in.Scores.KeywordDensity < 1 },
		message: fixed("Use your focus keyword naturally in headings and the first paragraph")},
	{when: func(in InsightInput) bool { return in.Scores.KeywordDensity > 6 },
		message: fixed("Reduce keyword repetition and use synonyms instead")},
	{when: func(in InsightInput) bool { return in.Scores.Readability < 60 },
		message: fixed("Simplify vocabulary and split complex sentences")},
	{when: func(in InsightInput) bool { return in.Scores.Readability >= 60 && in.Scores.Readability < 70 },
		message: fixed("Shorten paragraphs and add transition words")},
	{when: func(in InsightInput) bool { return in.Scores.Trending < 50 },
		message: fixed("Reference current trends and recent data in your topic")},
	{when: func(in InsightInput) bool { return !in.Features.HasHeaders },
		message: fixed("Add H2 and H3 headers to organize sections")},
	{when: func(in InsightInput) bool { return !in.Features.HasBulletPoints },
		message: fixed("Convert key points into bullet lists")},
	{when: func(in InsightInput) bool { return !in.Features.HasLinks },
		message: fixed("Link to related pages and authoritative sources")},
	{when: func(in InsightInput) bool { return in.Features.WordCount < 300 },
		message: fixed("Expand the content to at least 300 words")},
	{when: func(in InsightInput) bool { return in.Features.WordCount > 3000 },
		message: fixed("Split the content into a series or add a table of contents")},
	{when: func(in InsightInput) bool { return in.Features.AvgWordsPerSentence > 25 },
		message: fixed("Keep sentences under 25 words")},
	{when: func(in InsightInput) bool {
		return in.Features.SentenceCount > 0 && in.Features.AvgWordsPerSentence < 8
	},
		message: fixed("Combine short sentences to improve flow")},
	{when: func(in InsightInput) bool { return in.CompetitionLevel == models.CompetitionHigh },
		message: fixed("Target less competitive long-tail variations")},
}

var kindRecommendations = map[models.Kind][]string{
	models.KindContent: {
		"Write a compelling headline that includes your focus keyword",
		"Add internal links to related articles",
	},
	models.KindWebsite: {
		"Improve page load performance by compressing images and deferring scripts",
		"Add schema markup to qualify for rich results",
	},
	models.KindKeyword: {
		"Build supporting pages around long-tail keyword variations",
		"Match content format to the dominant search intent",
	},
	models.KindCompetitor: {
		"Create content that covers the gaps your competitors leave open",
		"Monitor competitor rankings and content changes monthly",
	},
}

var closingRecommendations = []string{
	"Refresh the content regularly to keep it current",
	"Track rankings, traffic and engagement metrics to measure impact",
}

// GenerateInsights evaluates the strength, weakness and recommendation rule
// tables in order and caps each list.
func GenerateInsights(in InsightInput) (models.Insights, error) {
	extra, ok := kindRecommendations[in.Kind]
	if !ok {
		return models.Insights{}, fmt.Errorf("insights for %q: %w", in.Kind, models.ErrInvalidInput)
	}

	recommendations := evaluate(recommendationRules, in, models.MaxRecommendations)
	recommendations.add(extra...)
	recommendations.add(closingRecommendations...)

	return models.Insights{
		Strengths:       evaluate(strengthRules, in, models.MaxStrengths).list(),
		Weaknesses:      evaluate(weaknessRules, in, models.MaxWeaknesses).list(),
		Recommendations: recommendations.list(),
	}, nil
}

func evaluate(rules []rule, in InsightInput, limit int) *sequence {
	seq := newSequence(limit)
	for _, r := range rules {
		if r.when(in) {
			seq.add(r.message(in))
		}
	}
	return seq
}
