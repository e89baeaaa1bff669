// internal/models/sentiment.go
package models

// Sentiment is the overall polarity label for a text blob.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentimentResult is the classifier output for one text blob.
// When Overall is neutral, both keyword lists are empty and Confidence is 0.5.
type SentimentResult struct {
	Overall          Sentiment `json:"overall"`
	Confidence       float64   `json:"confidence"`
	PositiveKeywords []string  `json:"positiveKeywords"`
	NegativeKeywords []string  `json:"negativeKeywords"`
	NeutralContext   []string  `json:"neutralContext"`
}

// NeutralSentiment returns the canonical neutral result used both by the
// classifier's decision rule and by degraded provider results.
func NeutralSentiment() SentimentResult {
	return SentimentResult{
		Overall:          SentimentNeutral,
		Confidence:       0.5,
		PositiveKeywords: []string{},
		NegativeKeywords: []string{},
		NeutralContext:   []string{},
	}
}
