package competitor

import (
	"fmt"

	"github.com/seo-optimizer/insights/models"
)

// Text-length bands gate the length-dependent opportunity and improvement
const (
	BandShort  = "short"
	BandMedium = "medium"
	BandLong   = "long"
)

// LengthBand classifies a text length: under 300 is short, over 500 long
func LengthBand(textLength int) string {
	switch {
	case textLength < 300:
		return BandShort
	case textLength > 500:
		return BandLong
	default:
		return BandMedium
	}
}

type ruleContext struct {
	in              Input
	kind            kindProfile
	industry        Industry
	level           models.CompetitionLevel
	average         int
	industryAverage int
	leader          models.Competitor
	top             []models.Competitor
}

// capped accumulates distinct entries in order up to limit
type capped struct {
	items []string
	limit int
}

func (c *capped) add(items ...string) {
	for _, item := range items {
		if len(c.items) >= c.limit {
			return
		}
		duplicate := false
		for _, existing := range c.items {
			if existing == item {
				duplicate = true
				break
			}
		}
		if !duplicate {
			c.items = append(c.items, item)
		}
	}
}

func opportunities(ctx ruleContext) []string {
	s := ctx.in.Scores
	out := &capped{limit: models.MaxOpportunities}

	if s.Overall < 70 {
		out.add("Improve overall content quality to close the gap with top-ranking competitors")
	}
	if s.KeywordDensity < 3 {
		out.add("Expand keyword coverage where competitors rank with thin content")
	}
	if s.Trending < 60 {
		out.add("Publish on emerging topics before competitors do")
	}
	switch ctx.level {
	case models.CompetitionLow:
		out.add("Low competition: move quickly to secure top positions")
	case models.CompetitionMedium:
		out.add("Differentiate with original research in a moderately contested market")
	case models.CompetitionHigh:
		out.add("Target long-tail keywords that leading competitors overlook")
	}
	if LengthBand(ctx.in.TextLength) == BandLong {
		out.add("Repurpose your long-form content into supporting posts and snippets")
	}
	out.add(ctx.kind.opportunities...)
	return out.items
}

func improvements(ctx ruleContext) []string {
	user := ctx.in.Scores.Overall
	out := &capped{limit: models.MaxImprovements}

	if user < ctx.industryAverage {
		out.add(fmt.Sprintf("Raise your score above the %s industry average of %d", ctx.industry, ctx.industryAverage))
	} else {
		out.add("Protect your above-average position with regular updates")
	}
	if user < ctx.leader.Score {
		out.add(fmt.Sprintf("Close the %d-point gap to %s, the current leader", ctx.leader.Score-user, ctx.leader.Name))
	}
	if LengthBand(ctx.in.TextLength) == BandShort {
		out.add("Expand content depth; leading competitors publish more comprehensive pages")
	}
	out.add(ctx.kind.improvements...)
	return out.items
}

func marketStrengths(ctx ruleContext) []string {
	s := ctx.in.Scores
	out := &capped{limit: models.MaxMarketStrengths}

	if s.Overall > ctx.average {
		out.add(fmt.Sprintf("Your score of %d beats the competitor average of %d", s.Overall, ctx.average))
	}
	if s.Readability >= 80 {
		out.add(fmt.Sprintf("Readability ahead of most %s competitors", ctx.industry))
	}
	if s.Trending >= 75 {
		out.add("Quicker than the market to pick up trending topics")
	}
	if s.KeywordDensity >= 2 && s.KeywordDensity <= 5 {
		out.add("Balanced keyword usage compared with competitors")
	}
	return out.items
}

func threats(ctx ruleContext) []string {
	out := &capped{limit: models.MaxThreats}

	if ctx.leader.Score >= 90 {
		out.add(fmt.Sprintf("%s dominates with a score of %d", ctx.leader.Name, ctx.leader.Score))
	}
	if ctx.level == models.CompetitionHigh {
		out.add("Crowded market with strong incumbents")
	}
	for _, c := range ctx.top {
		if c.Trend == models.TrendUp {
			out.add(fmt.Sprintf("%s is gaining momentum (score %d)", c.Name, c.Score))
		}
	}
	return out.items
}

// Gap compares the user's score with the industry average.
// Leading implies scoreGap <= -5, Behind implies scoreGap > 10 and Critical
// implies scoreGap > 15.
func Gap(industryAverage, userScore int, kindArea string) models.GapAnalysis {
	gap := industryAverage - userScore
	g := models.GapAnalysis{ScoreGap: gap}

	switch {
	case gap > 10:
		g.Position = models.PositionBehind
	case gap > -5:
		g.Position = models.PositionCompetitive
	default:
		g.Position = models.PositionLeading
	}

	switch {
	case gap > 15:
		g.Priority = models.PriorityCritical
	case gap > 5:
		g.Priority = models.PriorityHigh
	default:
		g.Priority = models.PriorityMedium
	}

	switch {
	case gap > 20:
		g.TimeToClose = "6-12 months"
	case gap > 10:
		g.TimeToClose = "3-6 months"
	default:
		g.TimeToClose = "1-3 months"
	}

	areas := &capped{limit: models.MaxKeyAreas}
	switch {
	case gap > 15:
		areas.add("Content quality and depth", "Keyword targeting")
	case gap > 5:
		areas.add("On-page optimization")
	default:
		areas.add("Content freshness")
	}
	if kindArea != "" {
		areas.add(kindArea)
	}
	g.KeyAreas = areas.items
	return g
}

// FallbackNotice is the opportunity shown when simulated data is unavailable
const FallbackNotice = "Live competitor data is unavailable; showing baseline estimates"

// Fallback returns the static competitor block used when simulation fails
func Fallback(userScore int) models.CompetitorAnalysis {
	industry := DefaultIndustry
	top := []models.Competitor{
		{
			Name:         "Industry Leader",
			Score:        78,
			MarketShare:  "25%",
			Industry:     industry.DisplayName(),
			Trend:        models.TrendUp,
			KeyStrengths: []string{"Established authority", "Consistent publishing cadence"},
		},
		{
			Name:         "Market Challenger",
			Score:        65,
			MarketShare:  "15%",
			Industry:     industry.DisplayName(),
			Trend:        models.TrendDown,
			KeyStrengths: []string{"Niche focus"},
		},
	}
	shares := make(map[string]string, len(top))
	for _, c := range top {
		shares[c.Name] = c.MarketShare
	}
	const average = 72

	return models.CompetitorAnalysis{
		Industry:            industry.String(),
		TopCompetitors:      top,
		AverageScore:        average,
		IndustryAverage:     average,
		CompetitionLevel:    models.CompetitionMedium,
		MarketShare:         shares,
		Opportunities:       []string{FallbackNotice},
		AreasForImprovement: []string{"Re-run the analysis to get a full competitive breakdown"},
		RealTimeData:        false,
		Strengths:           []string{},
		Threats:             []string{},
		GapAnalysis:         Gap(average, userScore, ""),
	}
}
