// internal/analysis/insights/generator.go
// Package insights produces rule-based narrative summaries of an aggregate
// report. Output is strictly deterministic for a given report.
package insights

import (
	"fmt"

	"brandsignal/internal/models"
)

const (
	maxInsights        = 6
	maxRecommendations = 5
)

// Generator synthesizes insight and recommendation strings.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns the insight list for a report, capped at six entries by
// truncation.
func (g *Generator) Generate(report *models.AggregateReport) []string {
	insights := []string{}

	switch {
	case report.TotalMentions > 50:
		insights = append(insights, fmt.Sprintf("%s shows high visibility with extensive coverage across queried providers", report.BrandName))
	case report.TotalMentions > 10:
		insights = append(insights, fmt.Sprintf("%s shows moderate visibility across queried providers", report.BrandName))
	case report.TotalMentions > 0:
		insights = append(insights, fmt.Sprintf("%s shows low visibility with limited coverage across queried providers", report.BrandName))
	default:
		insights = append(insights, fmt.Sprintf("no mentions detected for %s in the current query set", report.BrandName))
	}

	switch report.OverallSentiment {
	case models.SentimentPositive:
		insights = append(insights, "overall sentiment is predominantly positive")
	case models.SentimentNegative:
		insights = append(insights, "overall sentiment is predominantly negative")
	default:
		insights = append(insights, "overall sentiment is neutral or mixed")
	}

	if best := bestResult(report.ProviderResults); best != "" {
		insights = append(insights, fmt.Sprintf("strongest performance on %s", best))
	}
	insights = append(insights, fmt.Sprintf("%d total mentions detected across all providers", report.TotalMentions))

	if report.OverallVisibility > 70 {
		insights = append(insights, "overall visibility score places the brand in the top band")
	} else if report.OverallVisibility > 0 && report.OverallVisibility < 30 {
		insights = append(insights, "overall visibility score is in the bottom band")
	}

	for _, gap := range report.CompetitiveGaps {
		if gap.Severity == "high" {
			insights = append(insights, fmt.Sprintf("competitive gap detected: %s", gap.Description))
		}
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// Recommend returns the recommendation list for a report. Strategic
// recommendations are capped at five; the generic monitoring entries are
// always appended.
func (g *Generator) Recommend(report *models.AggregateReport) []string {
	strategic := []string{}

	if report.TotalMentions <= 10 {
		strategic = append(strategic,
			"invest in content marketing to raise brand presence in provider answers",
			"increase PR activity to expand source coverage",
		)
	}

	switch report.OverallSentiment {
	case models.SentimentNegative:
		strategic = append(strategic,
			"address recurring service complaints surfaced in negative mentions",
			"prepare a crisis communication plan for the dominant negative themes",
		)
	case models.SentimentPositive:
		strategic = append(strategic,
			"amplify positive coverage through owned channels",
		)
	}

	for _, gap := range report.CompetitiveGaps {
		if gap.Kind == models.GapVisibility {
			strategic = append(strategic, "close the visibility gap with targeted category campaigns")
			break
		}
	}

	if len(strategic) > maxRecommendations {
		strategic = strategic[:maxRecommendations]
	}

	return append(strategic,
		"monitor brand mentions on a regular cadence",
		"re-run the analysis after major announcements to track movement",
	)
}

// bestResult names the highest-scoring successful provider result.
func bestResult(results []models.ProviderResult) string {
	best := ""
	bestScore := -1
	for _, r := range results {
		if r.Succeeded && r.VisibilityScore > bestScore {
			best = r.ProviderName
			bestScore = r.VisibilityScore
		}
	}
	return best
}
