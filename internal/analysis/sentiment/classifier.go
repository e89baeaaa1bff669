// internal/analysis/sentiment/classifier.go
// Package sentiment scores text polarity with a fixed keyword lexicon,
// scoped to brand-relevant sentences.
package sentiment

import (
	"strings"

	"brandsignal/internal/models"
)

// Classifier is a pure function of (text, brandName, fixed lexicon); identical
// inputs always produce identical outputs.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores text for polarity around the given brand.
func (c *Classifier) Classify(text, brandName string) models.SentimentResult {
	relevant := relevantSentences(text, brandName)
	if len(relevant) == 0 {
		return models.NeutralSentiment()
	}

	blob := strings.ToLower(strings.Join(relevant, " "))

	positiveHits := lexiconHits(blob, positiveLexicon)
	negativeHits := lexiconHits(blob, negativeLexicon)

	neutralContext := []string{}
	for _, sentence := range relevant {
		lower := strings.ToLower(sentence)
		if len(lexiconHits(lower, positiveLexicon)) == 0 && len(lexiconHits(lower, negativeLexicon)) == 0 {
			neutralContext = append(neutralContext, sentence)
		}
	}

	pos, neg := len(positiveHits), len(negativeHits)
	switch {
	case pos > neg && pos > 0:
		return models.SentimentResult{
			Overall:          models.SentimentPositive,
			Confidence:       boundedRatio(pos, neg),
			PositiveKeywords: positiveHits,
			NegativeKeywords: negativeHits,
			NeutralContext:   neutralContext,
		}
	case neg > pos && neg > 0:
		return models.SentimentResult{
			Overall:          models.SentimentNegative,
			Confidence:       boundedRatio(neg, pos),
			PositiveKeywords: positiveHits,
			NegativeKeywords: negativeHits,
			NeutralContext:   neutralContext,
		}
	default:
		neutral := models.NeutralSentiment()
		neutral.NeutralContext = neutralContext
		return neutral
	}
}

// relevantSentences splits on sentence punctuation and keeps sentences that
// contain the brand name, case-insensitively.
func relevantSentences(text, brandName string) []string {
	brand := strings.ToLower(strings.TrimSpace(brandName))
	if text == "" || brand == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	var relevant []string
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), brand) {
			relevant = append(relevant, trimmed)
		}
	}
	return relevant
}

// lexiconHits returns the lexicon entries found as substrings of blob.
// Each entry is counted at most once.
func lexiconHits(blob string, lexicon []string) []string {
	hits := []string{}
	for _, keyword := range lexicon {
		if strings.Contains(blob, keyword) {
			hits = append(hits, keyword)
		}
	}
	return hits
}

// boundedRatio is the winning side's share of all hits, capped at 0.9.
func boundedRatio(winner, loser int) float64 {
	ratio := float64(winner) / float64(winner+loser)
	if ratio > 0.9 {
		return 0.9
	}
	return ratio
}
