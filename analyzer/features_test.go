package analyzer

import (
	"testing"

	"github.com/seo-optimizer/insights/models"
)

func TestExtractFeatures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want func(t *testing.T, got models.TextFeatures)
	}{
		{
			name: "html heading link number question",
			text: "<h1>Title</h1> SEO content with links http://a.com and 5 stats. Is this good?",
			want: func(t *testing.T, got models.TextFeatures) {
				if !got.HasHeaders {
					t.Error("expected headers")
				}
				if !got.HasLinks {
					t.Error("expected links")
				}
				if !got.HasNumbers {
					t.Error("expected numbers")
				}
				if got.QuestionCount != 1 {
					t.Errorf("expected 1 question, got %d", got.QuestionCount)
				}
			},
		},
		{
			name: "markdown heading and bullets",
			text: "# Guide\n\n- first point\n- second point\n",
			want: func(t *testing.T, got models.TextFeatures) {
				if !got.HasHeaders {
					t.Error("expected headers")
				}
				if !got.HasBulletPoints {
					t.Error("expected bullet points")
				}
				if got.HasLinks {
					t.Error("did not expect links")
				}
			},
		},
		{
			name: "setext heading found after rendering",
			text: "Guide\n=====\n\nPlain paragraph.",
			want: func(t *testing.T, got models.TextFeatures) {
				if !got.HasHeaders {
					t.Error("expected setext heading to count as a header")
				}
			},
		},
		{
			name: "ordered list found after rendering",
			text: "Steps:\n\n1. Plan\n2. Write\n",
			want: func(t *testing.T, got models.TextFeatures) {
				if !got.HasBulletPoints {
					t.Error("expected ordered list to count as a list")
				}
			},
		},
		{
			name: "relative markdown link",
			text: "Read the [guide](/docs/guide) first.",
			want: func(t *testing.T, got models.TextFeatures) {
				if !got.HasLinks {
					t.Error("expected markdown link")
				}
			},
		},
		{
			name: "counts",
			text: "one two three. four five?",
			want: func(t *testing.T, got models.TextFeatures) {
				if got.WordCount != 5 {
					t.Errorf("expected 5 words, got %d", got.WordCount)
				}
				if got.SentenceCount != 2 {
					t.Errorf("expected 2 sentences, got %d", got.SentenceCount)
				}
				if got.AvgWordsPerSentence != 2.5 {
					t.Errorf("expected 2.5 words per sentence, got %v", got.AvgWordsPerSentence)
				}
				if got.Length != len("one two three. four five?") {
					t.Errorf("unexpected length %d", got.Length)
				}
			},
		},
		{
			name: "no terminator",
			text: "words without an ending",
			want: func(t *testing.T, got models.TextFeatures) {
				if got.SentenceCount != 0 || got.AvgWordsPerSentence != 0 {
					t.Errorf("expected no sentences, got %d (avg %v)", got.SentenceCount, got.AvgWordsPerSentence)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, ExtractFeatures(tt.text))
		})
	}
}

func TestExtractFeaturesEmpty(t *testing.T) {
	got := ExtractFeatures("")
	if got != (models.TextFeatures{}) {
		t.Errorf("expected zero features for empty text, got %+v", got)
	}
}
