// internal/analysis/scoring/scores.go
// Package scoring turns detection and sentiment results into composite
// scores. Every function here is deterministic and free of side effects.
package scoring

import (
	"math"
	"strings"

	"brandsignal/internal/models"
)

// contextLexicon is the fixed relevance vocabulary. Shared, read-only.
var contextLexicon = []string{
	"market",
	"industry",
	"product",
	"innovation",
	"technology",
	"consumer",
	"growth",
	"competitive",
	"strategy",
	"revenue",
	"customers",
}

// sourceWeights is the fixed per-source trust table.
var sourceWeights = map[string]float64{
	"news":       0.9,
	"hackernews": 0.8,
	"reddit":     0.7,
	"twitter":    0.6,
}

const defaultSourceWeight = 0.5

// VisibilityScore combines mention volume, contextual relevance, and
// sentiment into a 0..100 score.
func VisibilityScore(mentionCount int, text string, overall models.Sentiment) int {
	mentionPart := mentionCount * 10
	if mentionPart > 50 {
		mentionPart = 50
	}

	contextPart := 2 * contextHits(text)
	if contextPart > 30 {
		contextPart = 30
	}

	score := mentionPart + contextPart + sentimentBonus(overall)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func contextHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, keyword := range contextLexicon {
		hits += strings.Count(lower, keyword)
	}
	return hits
}

func sentimentBonus(overall models.Sentiment) int {
	switch overall {
	case models.SentimentPositive:
		return 20
	case models.SentimentNeutral:
		return 10
	default:
		return 0
	}
}

// SourceWeight returns the fixed trust weight for a source name.
func SourceWeight(source string) float64 {
	if w, ok := sourceWeights[strings.ToLower(source)]; ok {
		return w
	}
	return defaultSourceWeight
}

// CredibilityScore blends source trust, engagement, and content length into a
// 0..1 score. The result is always positive: the 0.5 base keeps even an
// unknown, empty source above zero.
func CredibilityScore(item models.RawItem, source string) float64 {
	return CredibilityScoreWeighted(item, SourceWeight(source))
}

// CredibilityScoreWeighted is CredibilityScore with an explicit trust weight,
// for sources whose weight comes from configuration.
func CredibilityScoreWeighted(item models.RawItem, weight float64) float64 {
	score := 0.5 + weight*0.3

	switch {
	case item.Engagement > 100:
		score += 0.2
	case item.Engagement > 50:
		score += 0.1
	case item.Engagement > 10:
		score += 0.05
	}

	switch {
	case len(item.Content) > 200:
		score += 0.1
	case len(item.Content) > 100:
		score += 0.05
	}

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// OverallVisibility is the rounded mean of per-result visibility scores,
// zero for an empty set.
func OverallVisibility(results []models.ProviderResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.VisibilityScore
	}
	return int(math.Round(float64(sum) / float64(len(results))))
}

// AverageSentiment is a majority vote across sentiment labels. Ties resolve
// to neutral. The vote is order-independent.
func AverageSentiment(sentiments []models.Sentiment) models.Sentiment {
	counts := map[models.Sentiment]int{}
	for _, s := range sentiments {
		counts[s]++
	}

	pos, neu, neg := counts[models.SentimentPositive], counts[models.SentimentNeutral], counts[models.SentimentNegative]
	switch {
	case pos > neu && pos > neg:
		return models.SentimentPositive
	case neg > neu && neg > pos:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
