// internal/analysis/scoring/gaps.go
package scoring

import (
	"fmt"

	"brandsignal/internal/models"
)

// DetectGaps flags competitive weaknesses for the primary brand against its
// competitors and always appends the two fixed opportunity gaps.
func DetectGaps(primary BrandSignal, competitors []BrandSignal, positiveRatio float64) []models.CompetitiveGap {
	gaps := []models.CompetitiveGap{}

	maxVisibility := primary.Visibility
	for _, c := range competitors {
		if c.Visibility > maxVisibility {
			maxVisibility = c.Visibility
		}
	}
	if float64(primary.Visibility) < 0.8*float64(maxVisibility) {
		gaps = append(gaps, models.CompetitiveGap{
			Kind:        models.GapVisibility,
			Description: fmt.Sprintf("%s visibility trails the category leader", primary.Brand),
			Severity:    "high",
		})
	}

	if positiveRatio < 0.6 {
		gaps = append(gaps, models.CompetitiveGap{
			Kind:        models.GapSentiment,
			Description: fmt.Sprintf("positive sentiment share for %s is below 60%%", primary.Brand),
			Severity:    "medium",
		})
	}

	if len(competitors) > 0 {
		totalMentions := 0
		for _, c := range competitors {
			totalMentions += c.Mentions
		}
		avgMentions := float64(totalMentions) / float64(len(competitors))
		if float64(primary.Mentions) < 0.7*avgMentions {
			gaps = append(gaps, models.CompetitiveGap{
				Kind:        models.GapMentions,
				Description: fmt.Sprintf("%s is mentioned less often than the competitor average", primary.Brand),
				Severity:    "medium",
			})
		}
	}

	gaps = append(gaps,
		models.CompetitiveGap{
			Kind:        models.GapInnovation,
			Description: "highlight product innovation to differentiate from the comparison set",
			Severity:    "low",
		},
		models.CompetitiveGap{
			Kind:        models.GapDifferentiation,
			Description: "sharpen brand positioning against overlapping competitor messaging",
			Severity:    "low",
		},
	)

	return gaps
}
