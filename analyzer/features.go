package analyzer

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday/v2"

	"github.com/seo-optimizer/insights/models"
)

var (
	sentenceRe      = regexp.MustCompile(`[.!?]+`)
	markdownHeadRe  = regexp.MustCompile(`#\s`)
	htmlHeadingRe   = regexp.MustCompile(`(?i)<h[1-6][\s>]`)
	bulletLineRe    = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]`)
	htmlListRe      = regexp.MustCompile(`(?i)<(ul|ol|li)[\s>]`)
	urlRe           = regexp.MustCompile(`https?://`)
	markdownLinkRe  = regexp.MustCompile(`\[[^\]]*\]\([^)\s]+\)`)
	digitRe         = regexp.MustCompile(`[0-9]`)
	markdownOptions = blackfriday.WithExtensions(blackfriday.CommonExtensions)
)

// ExtractFeatures derives structural features from raw text. It never fails;
// empty text yields the zero value.
func ExtractFeatures(text string) models.TextFeatures {
	if text == "" {
		return models.TextFeatures{}
	}

	f := models.TextFeatures{
		Length:          len(text),
		WordCount:       len(strings.Fields(text)),
		SentenceCount:   len(sentenceRe.FindAllStringIndex(text, -1)),
		HasHeaders:      markdownHeadRe.MatchString(text) || htmlHeadingRe.MatchString(text),
		HasBulletPoints: bulletLineRe.MatchString(text) || htmlListRe.MatchString(text),
		HasLinks:        urlRe.MatchString(text) || markdownLinkRe.MatchString(text),
		HasNumbers:      digitRe.MatchString(text),
		QuestionCount:   strings.Count(text, "?"),
	}
	if f.SentenceCount > 0 {
		f.AvgWordsPerSentence = float64(f.WordCount) / float64(f.SentenceCount)
	}

	if !f.HasHeaders || !f.HasBulletPoints || !f.HasLinks {
		detectRenderedStructure(text, &f)
	}
	return f
}

// detectRenderedStructure renders Markdown to HTML and inspects the DOM,
// catching setext headings, ordered lists and attribute-laden tags the
// line patterns miss.
func detectRenderedStructure(text string, f *models.TextFeatures) {
	rendered := blackfriday.Run([]byte(text), markdownOptions)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rendered))
	if err != nil {
		return
	}
	if doc.Find("h1,h2,h3,h4,h5,h6").Length() > 0 {
		f.HasHeaders = true
	}
	if doc.Find("ul,ol,li").Length() > 0 {
		f.HasBulletPoints = true
	}
	if doc.Find("a[href]").Length() > 0 {
		f.HasLinks = true
	}
}
