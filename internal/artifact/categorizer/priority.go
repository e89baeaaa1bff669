// internal/artifact/categorizer/priority.go
package categorizer

import (
	"strings"

	"brandsignal/internal/models"
)

// importantBrands gets a priority boost when the artifact's brand matches.
// Process-wide, read-only.
var importantBrands = map[string]bool{
	"tesla":     true,
	"apple":     true,
	"google":    true,
	"microsoft": true,
	"amazon":    true,
	"nike":      true,
	"coca-cola": true,
}

// highPriorityTypes pin the base priority before score adjustments.
var highPriorityTypes = map[string]int{
	"competitive-intelligence": 1,
	"visibility-matrix":        1,
	"content-optimization":     2,
	"brand-monitor-report":     2,
}

// computePriority derives the 1..5 priority (1 is most urgent): type base,
// then overall-score and important-brand adjustments.
func computePriority(artifact models.Artifact) int {
	priority := 3
	if base, ok := highPriorityTypes[strings.ToLower(strings.TrimSpace(artifact.Type))]; ok {
		priority = base
	}

	if score, ok := contentNumber(artifact.Content, "overallScore"); ok {
		if score > 80 && priority > 1 {
			priority--
		}
		if score < 40 && priority < 5 {
			priority++
		}
	}

	if brand, ok := artifact.Content["brandName"].(string); ok {
		if importantBrands[strings.ToLower(strings.TrimSpace(brand))] && priority > 1 {
			priority--
		}
	}

	return priority
}

// computeConfidence derives the 0..1 classification confidence from how much
// recognizable signal the artifact carried.
func computeConfidence(artifact models.Artifact, category string) float64 {
	confidence := 0.8

	_, hasBrand := artifact.Content["brandName"]
	_, hasScore := artifact.Content["overallScore"]
	if hasBrand && hasScore {
		confidence += 0.1
	}

	if KnownCategory(category) {
		confidence += 0.05
	}
	if category == CategoryGeneral {
		confidence -= 0.2
	}

	_, hasKeywords := artifact.Content["targetKeywords"]
	if !hasBrand && !hasKeywords {
		confidence -= 0.15
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
