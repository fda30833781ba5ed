package competitor

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Industry is the market bucket competitors are drawn from
type Industry int

const (
	IndustryEcommerce Industry = iota
	IndustryTechnology
	IndustryMarketing
	IndustryFinance
)

// DefaultIndustry is used when no rule matches
const DefaultIndustry = IndustryMarketing

var industryNames = map[Industry]string{
	IndustryEcommerce:  "ecommerce",
	IndustryTechnology: "technology",
	IndustryMarketing:  "marketing",
	IndustryFinance:    "finance",
}

var displayCaser = cases.Title(language.English)

func (i Industry) String() string {
	if name, ok := industryNames[i]; ok {
		return name
	}
	return industryNames[DefaultIndustry]
}

// DisplayName is the title-cased name shown on competitor cards
func (i Industry) DisplayName() string {
	return displayCaser.String(i.String())
}

// industryRule tags an industry with the terms that select it
type industryRule struct {
	industry Industry
	terms    []string
}

// industryRules are listed in priority order, which breaks ties
var industryRules = []industryRule{
	{IndustryEcommerce, []string{"ecommerce", "e-commerce", "shop", "shopping", "store", "cart", "retail", "product", "buy"}},
	{IndustryTechnology, []string{"tech", "technology", "software", "saas", "cloud", "developer", "digital", "app", "ai"}},
	{IndustryMarketing, []string{"marketing", "seo", "brand", "content", "social", "advertising", "agency"}},
	{IndustryFinance, []string{"finance", "financial", "bank", "banking", "invest", "investment", "money", "loan", "insurance", "crypto", "fintech"}},
}

// minDomainSubstring is the shortest term matched inside a domain label.
// Domains run words together ("myshop"); shorter terms like "ai" would
// match almost anything.
const minDomainSubstring = 4

// DetectIndustry scores every rule by how many of its terms appear in the
// domain or keywords and returns the highest, earlier rules winning ties.
// Keyword terms must match whole words. It always resolves, falling back to
// DefaultIndustry.
func DetectIndustry(domain string, keywords []string) Industry {
	domain = strings.ToLower(domain)
	domainWords := padWords(domain)
	keywordWords := padWords(strings.ToLower(strings.Join(keywords, " ")))

	best, bestHits := DefaultIndustry, 0
	for _, r := range industryRules {
		hits := 0
		for _, term := range r.terms {
			inDomain := hasWord(domainWords, term) ||
				(len(term) >= minDomainSubstring && strings.Contains(domain, term))
			if inDomain || hasWord(keywordWords, term) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = r.industry, hits
		}
	}
	return best
}

// padWords joins the letter/digit runs of s with single spaces, padded on
// both ends
func padWords(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(words, " ") + " "
}

// hasWord reports whether term occurs as whole words, allowing a plural "s"
func hasWord(padded, term string) bool {
	t := strings.TrimSuffix(padWords(term), " ")
	return strings.Contains(padded, t+" ") || strings.Contains(padded, t+"s ")
}
