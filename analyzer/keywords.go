package analyzer

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/seo-optimizer/insights/models"
)

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// sequence is an ordered, case-insensitively de-duplicated list with a cap.
// Items offered after the cap is reached are dropped, which is the same as
// truncating the fully evaluated list.
type sequence struct {
	items []string
	seen  map[string]struct{}
	limit int
}

func newSequence(limit int) *sequence {
	return &sequence{
		items: make([]string, 0, limit),
		seen:  make(map[string]struct{}, limit),
		limit: limit,
	}
}

func (s *sequence) add(items ...string) {
	for _, item := range items {
		if len(s.items) >= s.limit {
			return
		}
		key := strings.ToLower(item)
		if _, dup := s.seen[key]; dup || item == "" {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, item)
	}
}

func (s *sequence) list() []string {
	return s.items
}

// GenerateKeywords blends the kind's primary phrases, the month's seasonal
// phrase, keywords extracted from the text, then long-tail and semantic
// phrases until the cap is reached.
func GenerateKeywords(kind models.Kind, text string, now time.Time) ([]string, error) {
	table, ok := keywordTables[kind]
	if !ok {
		return nil, fmt.Errorf("keyword table for %q: %w", kind, models.ErrInvalidInput)
	}

	seq := newSequence(models.MaxKeywords)
	seq.add(table.primary...)
	seq.add(seasonalThemes[monthIndex(now)] + " " + table.seasonalNoun)
	seq.add(ExtractContextualKeywords(text, 3)...)
	seq.add(table.longTail...)
	seq.add(table.semantic...)
	return seq.list(), nil
}

// GenerateTrendingTags blends evergreen, month-specific, topic-bucket and
// emerging tags for the kind.
func GenerateTrendingTags(kind models.Kind, text string, now time.Time) ([]string, error) {
	table, ok := trendTables[kind]
	if !ok {
		return nil, fmt.Errorf("trend table for %q: %w", kind, models.ErrInvalidInput)
	}

	seq := newSequence(models.MaxTrendingTags)
	seq.add(table.evergreen...)
	seq.add(table.seasonal[monthIndex(now)]...)
	seq.add(matchTopicGroups(trendBuckets, text, 2)...)
	seq.add(table.emerging...)
	return seq.list(), nil
}

// GenerateHashtags blends core and trending hashtags, up to two contextual
// hashtags from the text and niche hashtags.
func GenerateHashtags(kind models.Kind, text string) ([]string, error) {
	table, ok := hashtagTables[kind]
	if !ok {
		return nil, fmt.Errorf("hashtag table for %q: %w", kind, models.ErrInvalidInput)
	}

	seq := newSequence(models.MaxHashtags)
	seq.add(table.core...)
	seq.add(table.trending...)
	seq.add(matchTopicGroups(hashtagGroups, text, 2)...)
	seq.add(table.niche...)
	return seq.list(), nil
}

// ExtractContextualKeywords returns up to n words that occur more than once
// in text, ordered by frequency with ties kept in first-seen order.
func ExtractContextualKeywords(text string, n int) []string {
	if text == "" || n <= 0 {
		return nil
	}

	normalized := nonAlphanumericRe.ReplaceAllString(foldText(text), "")

	type wordFreq struct {
		word  string
		count int
		first int
	}
	freq := make(map[string]*wordFreq)
	for i, w := range strings.Fields(normalized) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if entry, ok := freq[w]; ok {
			entry.count++
			continue
		}
		freq[w] = &wordFreq{word: w, count: 1, first: i}
	}

	candidates := make([]*wordFreq, 0, len(freq))
	for _, entry := range freq {
		if entry.count > 1 {
			candidates = append(candidates, entry)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count == candidates[j].count {
			return candidates[i].first < candidates[j].first
		}
		return candidates[i].count > candidates[j].count
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.word)
	}
	return out
}

// foldText lower-cases text and strips diacritics so "Café" and "cafe" count
// as the same word.
func foldText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// matchTopicGroups returns the tags of the first limit groups with a trigger
// present as a whole word or phrase in the text. A trailing plural "s" on the
// text side still matches.
func matchTopicGroups(groups []topicGroup, text string, limit int) []string {
	if text == "" {
		return nil
	}
	padded := padWords(foldText(text))

	var tags []string
	for _, g := range groups {
		if len(tags) >= limit {
			break
		}
		for _, trigger := range g.triggers {
			if hasTerm(padded, trigger) {
				tags = append(tags, g.tag)
				break
			}
		}
	}
	return tags
}

// padWords splits s on anything that is not a letter or digit and joins the
// words with single spaces, padded on both ends
func padWords(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(words, " ") + " "
}

func hasTerm(padded, term string) bool {
	t := strings.TrimSuffix(padWords(strings.ToLower(term)), " ")
	return strings.Contains(padded, t+" ") || strings.Contains(padded, t+"s ")
}

// IndustrySignals drops the kind's own table phrases from keywords so only
// the ones drawn from the input text remain
func IndustrySignals(kind models.Kind, keywords []string) []string {
	table, ok := keywordTables[kind]
	if !ok {
		return nil
	}

	static := make(map[string]struct{}, len(table.primary)+len(table.longTail)+len(table.semantic)+len(seasonalThemes))
	for _, p := range slices.Concat(table.primary, table.longTail, table.semantic) {
		static[strings.ToLower(p)] = struct{}{}
	}
	for _, theme := range seasonalThemes {
		static[theme+" "+table.seasonalNoun] = struct{}{}
	}

	var out []string
	for _, k := range keywords {
		if _, ok := static[strings.ToLower(k)]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func monthIndex(now time.Time) int {
	return int(now.Month()) - 1
}
