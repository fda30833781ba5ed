// Package competitor synthesizes an illustrative competitive landscape for an
// analyzed input. Nothing here is measured; every figure is simulated.
package competitor

import (
	"fmt"
	"math"
	"sort"

	"github.com/seo-optimizer/insights/models"
	"github.com/seo-optimizer/insights/rng"
)

const (
	minCompetitors = 3
	maxCompetitors = 5
	minScore       = 35
	maxScore       = 95
)

// Input is everything the simulator keys off
type Input struct {
	Kind       models.Kind
	Scores     models.Scores
	Domain     string
	Keywords   []string // drawn from the input text; selects the industry
	TextLength int
}

// Simulator generates competitor markets from an injected random source
type Simulator struct {
	rnd rng.Source
}

// NewSimulator creates a simulator drawing from r
func NewSimulator(r rng.Source) *Simulator {
	return &Simulator{rnd: r}
}

// Simulate builds the competitor analysis for in. It fails only for an
// unknown kind.
func (s *Simulator) Simulate(in Input) (models.CompetitorAnalysis, error) {
	kp, ok := kindProfiles[in.Kind]
	if !ok {
		return models.CompetitorAnalysis{}, fmt.Errorf("competitor profile for %q: %w", in.Kind, models.ErrInvalidInput)
	}

	industry := DetectIndustry(in.Domain, in.Keywords)
	user := in.Scores.Overall

	all := s.generate(industry, user)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	average := averageScore(all)
	industryAverage := int(math.Round(float64(average+industryProfiles[industry].benchmark) / 2))
	level := determineCompetitionLevel(average)

	top := all[:min(models.MaxTopCompetitors, len(all))]
	shares := make(map[string]string, len(all))
	for _, c := range all {
		shares[c.Name] = c.MarketShare
	}

	ctx := ruleContext{
		in:              in,
		kind:            kp,
		industry:        industry,
		level:           level,
		average:         average,
		industryAverage: industryAverage,
		leader:          top[0],
		top:             top,
	}

	return models.CompetitorAnalysis{
		Industry:            industry.String(),
		TopCompetitors:      top,
		AverageScore:        average,
		IndustryAverage:     industryAverage,
		CompetitionLevel:    level,
		MarketShare:         shares,
		Opportunities:       opportunities(ctx),
		AreasForImprovement: improvements(ctx),
		RealTimeData:        true,
		Strengths:           marketStrengths(ctx),
		Threats:             threats(ctx),
		GapAnalysis:         Gap(industryAverage, user, kp.keyArea),
	}, nil
}

// generate draws 3 to 5 competitors for the industry. Scores depend on rank:
// the first is pushed above the user, the second hovers around the user and
// the rest spread widely.
func (s *Simulator) generate(industry Industry, user int) []models.Competitor {
	profile := industryProfiles[industry]
	count := minCompetitors + s.rnd.Intn(maxCompetitors-minCompetitors+1)
	offset := s.rnd.Intn(len(profile.names))

	out := make([]models.Competitor, 0, count)
	for rank := 0; rank < count; rank++ {
		var score int
		switch rank {
		case 0:
			score = min(maxScore, user+10+s.rnd.Intn(15))
		case 1:
			score = user + s.rnd.Intn(20) - 10
		default:
			score = clamp(user+s.rnd.Intn(40)-20, 30, 90)
		}
		score = clamp(score, minScore, maxScore)

		idx := offset + rank
		name := profile.names[idx%len(profile.names)]
		if idx >= len(profile.names) {
			name = fmt.Sprintf("%s %d", name, idx/len(profile.names)+1)
		}

		trend := models.TrendUp
		if s.rnd.Intn(2) == 0 {
			trend = models.TrendDown
		}

		share := int(math.Floor(float64(score)/100*30)) + s.rnd.Intn(10)
		out = append(out, models.Competitor{
			Name:             name,
			Score:            score,
			MarketShare:      fmt.Sprintf("%d%%", share),
			Industry:         industry.DisplayName(),
			Trend:            trend,
			KeyStrengths:     s.pickStrengths(profile.strengths, 2),
			EstimatedTraffic: score*1200 + s.rnd.Intn(8000),
			KeywordCount:     score*15 + s.rnd.Intn(400),
		})
	}
	return out
}

func (s *Simulator) pickStrengths(pool []string, n int) []string {
	start := s.rnd.Intn(len(pool))
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(pool); i++ {
		out = append(out, pool[(start+i)%len(pool)])
	}
	return out
}

// determineCompetitionLevel labels the market from the competitor average:
// a stronger field means more competition.
func determineCompetitionLevel(average int) models.CompetitionLevel {
	switch {
	case average >= 75:
		return models.CompetitionHigh
	case average >= 60:
		return models.CompetitionMedium
	default:
		return models.CompetitionLow
	}
}

func averageScore(comps []models.Competitor) int {
	if len(comps) == 0 {
		return 0
	}
	total := 0
	for _, c := range comps {
		total += c.Score
	}
	return int(math.Round(float64(total) / float64(len(comps))))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
