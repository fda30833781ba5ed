package models

import "time"

// Kind identifies what the submitted input represents
type Kind string

const (
	KindContent    Kind = "content"
	KindWebsite    Kind = "website"
	KindKeyword    Kind = "keyword"
	KindCompetitor Kind = "competitor"
)

// Kinds lists every supported analysis kind in display order
var Kinds = []Kind{KindContent, KindWebsite, KindKeyword, KindCompetitor}

// Valid reports whether k is one of the supported kinds
func (k Kind) Valid() bool {
	switch k {
	case KindContent, KindWebsite, KindKeyword, KindCompetitor:
		return true
	}
	return false
}

// CompetitionLevel is the qualitative competition label
type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "Low"
	CompetitionMedium CompetitionLevel = "Medium"
	CompetitionHigh   CompetitionLevel = "High"
)

// Position describes where the user stands against the industry
type Position string

const (
	PositionBehind      Position = "Behind"
	PositionCompetitive Position = "Competitive"
	PositionLeading     Position = "Leading"
)

// Priority ranks how urgently a gap must be closed
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
)

// Trend is the direction a competitor is moving in
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Caps on the length of every returned sequence
const (
	MaxKeywords        = 8
	MaxHashtags        = 8
	MaxTrendingTags    = 8
	MaxStrengths       = 4
	MaxWeaknesses      = 4
	MaxRecommendations = 6
	MaxTopCompetitors  = 3
	MaxOpportunities   = 6
	MaxImprovements    = 6
	MaxMarketStrengths = 3
	MaxThreats         = 4
	MaxKeyAreas        = 3
)

// AnalysisRequest is the single input accepted by the engine
type AnalysisRequest struct {
	Text         string `json:"text"`
	AnalysisKind Kind   `json:"analysisKind"`
	URL          string `json:"url,omitempty" validate:"omitempty,url"`
}

// TextFeatures holds the structural features derived from raw text
type TextFeatures struct {
	Length              int     `json:"length"`
	WordCount           int     `json:"wordCount"`
	SentenceCount       int     `json:"sentenceCount"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
	HasHeaders          bool    `json:"hasHeaders"`
	HasBulletPoints     bool    `json:"hasBulletPoints"`
	HasLinks            bool    `json:"hasLinks"`
	HasNumbers          bool    `json:"hasNumbers"`
	QuestionCount       int     `json:"questionCount"`
}

// Scores is the tuple produced by the score calculator
type Scores struct {
	Overall        int `json:"overallScore"`
	KeywordDensity int `json:"keywordDensity"`
	Readability    int `json:"readabilityScore"`
	Trending       int `json:"trendingScore"`
}

// Insights groups the rule-driven findings about the input
type Insights struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// Competitor is a synthesized market participant
type Competitor struct {
	Name             string   `json:"name"`
	Score            int      `json:"score"`
	MarketShare      string   `json:"marketShare"`
	Industry         string   `json:"industry"`
	Trend            Trend    `json:"trend"`
	KeyStrengths     []string `json:"keyStrengths"`
	EstimatedTraffic int      `json:"estimatedTraffic"`
	KeywordCount     int      `json:"keywordCount"`
}

// GapAnalysis compares the user's score with the industry average
type GapAnalysis struct {
	ScoreGap    int      `json:"scoreGap"`
	Position    Position `json:"position"`
	Priority    Priority `json:"priority"`
	TimeToClose string   `json:"timeToClose"`
	KeyAreas    []string `json:"keyAreas"`
}

// CompetitorAnalysis is the synthesized competitive landscape.
// Market shares are illustrative and do not sum to 100.
type CompetitorAnalysis struct {
	Industry            string            `json:"industry"`
	TopCompetitors      []Competitor      `json:"topCompetitors"`
	AverageScore        int               `json:"averageScore"`
	IndustryAverage     int               `json:"industryAverage"`
	CompetitionLevel    CompetitionLevel  `json:"competitionLevel"`
	MarketShare         map[string]string `json:"marketShare"`
	Opportunities       []string          `json:"opportunities"`
	AreasForImprovement []string          `json:"areasForImprovement"`
	RealTimeData        bool              `json:"realTimeData"`
	Strengths           []string          `json:"strengths"`
	Threats             []string          `json:"threats"`
	GapAnalysis         GapAnalysis       `json:"gapAnalysis"`
}

// Clone returns a deep copy so cached values are never shared with callers
func (c CompetitorAnalysis) Clone() CompetitorAnalysis {
	out := c
	out.TopCompetitors = make([]Competitor, len(c.TopCompetitors))
	for i, comp := range c.TopCompetitors {
		comp.KeyStrengths = append([]string(nil), comp.KeyStrengths...)
		out.TopCompetitors[i] = comp
	}
	out.MarketShare = make(map[string]string, len(c.MarketShare))
	for k, v := range c.MarketShare {
		out.MarketShare[k] = v
	}
	out.Opportunities = append([]string(nil), c.Opportunities...)
	out.AreasForImprovement = append([]string(nil), c.AreasForImprovement...)
	out.Strengths = append([]string(nil), c.Strengths...)
	out.Threats = append([]string(nil), c.Threats...)
	out.GapAnalysis.KeyAreas = append([]string(nil), c.GapAnalysis.KeyAreas...)
	return out
}

// AnalysisResult is the aggregate returned to callers
type AnalysisResult struct {
	ID                 string             `json:"id"`
	AnalysisKind       Kind               `json:"analysisKind"`
	URL                string             `json:"url,omitempty"`
	AnalyzedAt         time.Time          `json:"analyzedAt"`
	OverallScore       int                `json:"overallScore"`
	KeywordDensity     int                `json:"keywordDensity"`
	ReadabilityScore   int                `json:"readabilityScore"`
	TrendingScore      int                `json:"trendingScore"`
	CompetitionLevel   CompetitionLevel   `json:"competitionLevel"`
	SearchVolume       int                `json:"searchVolume"`
	Keywords           []string           `json:"keywords"`
	Hashtags           []string           `json:"hashtags"`
	TrendingTags       []string           `json:"trendingTags"`
	Features           TextFeatures       `json:"features"`
	CompetitorAnalysis CompetitorAnalysis `json:"competitorAnalysis"`
	Insights           Insights           `json:"insights"`
	Cached             bool               `json:"cached"`
	Fallback           bool               `json:"fallback"`
}

// Scores returns the score tuple of the result
func (r *AnalysisResult) Scores() Scores {
	return Scores{
		Overall:        r.OverallScore,
		KeywordDensity: r.KeywordDensity,
		Readability:    r.ReadabilityScore,
		Trending:       r.TrendingScore,
	}
}
