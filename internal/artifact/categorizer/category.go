// internal/artifact/categorizer/category.go
package categorizer

import (
	"strings"

	"brandsignal/internal/models"
)

// Closed category set. determineCategory returns one of these or "general",
// never anything else.
const (
	CategoryBrandVisibility     = "brand-visibility"
	CategoryCompetitiveAnalysis = "competitive-analysis"
	CategoryContentStrategy     = "content-strategy"
	CategoryBrandMonitoring     = "brand-monitoring"
	CategorySentimentAnalysis   = "sentiment-analysis"
	CategoryMarketPosition      = "market-position"
	CategoryGeneral             = "general"
)

// typeCategoryMap is the first waterfall stage: exact artifact-type lookup.
// Process-wide, read-only.
var typeCategoryMap = map[string]string{
	"visibility-matrix":        CategoryBrandVisibility,
	"competitive-intelligence": CategoryCompetitiveAnalysis,
	"content-optimization":     CategoryContentStrategy,
	"brand-monitor-report":     CategoryBrandMonitoring,
	"sentiment-report":         CategorySentimentAnalysis,
	"share-of-voice-report":    CategoryMarketPosition,
	"source-crawl":             CategoryBrandMonitoring,
}

var knownCategories = map[string]bool{
	CategoryBrandVisibility:     true,
	CategoryCompetitiveAnalysis: true,
	CategoryContentStrategy:     true,
	CategoryBrandMonitoring:     true,
	CategorySentimentAnalysis:   true,
	CategoryMarketPosition:      true,
}

// contentShapeRules maps a content field to the category its presence
// implies. Checked in order; the first present field wins.
var contentShapeRules = []struct {
	field    string
	category string
}{
	{"overallVisibility", CategoryBrandVisibility},
	{"visibilityScore", CategoryBrandVisibility},
	{"shareOfVoice", CategoryMarketPosition},
	{"marketShare", CategoryMarketPosition},
	{"competitiveGaps", CategoryCompetitiveAnalysis},
	{"competitors", CategoryCompetitiveAnalysis},
	{"overallSentiment", CategorySentimentAnalysis},
	{"sentiment", CategorySentimentAnalysis},
	{"targetKeywords", CategoryContentStrategy},
	{"sourceItems", CategoryBrandMonitoring},
}

// metadataTagRules maps a tag substring to a category. Checked after content
// shape, in order.
var metadataTagRules = []struct {
	substring string
	category  string
}{
	{"visibility", CategoryBrandVisibility},
	{"competitive", CategoryCompetitiveAnalysis},
	{"competitor", CategoryCompetitiveAnalysis},
	{"sentiment", CategorySentimentAnalysis},
	{"share-of-voice", CategoryMarketPosition},
	{"content", CategoryContentStrategy},
	{"monitor", CategoryBrandMonitoring},
}

// determineCategory runs the single-pass category waterfall: type map, then
// content shape, then metadata tags, then "general". It never fails.
func determineCategory(artifact models.Artifact) string {
	if category, ok := typeCategoryMap[strings.ToLower(strings.TrimSpace(artifact.Type))]; ok {
		return category
	}

	for _, rule := range contentShapeRules {
		if _, present := artifact.Content[rule.field]; present {
			return rule.category
		}
	}

	if knownCategories[strings.ToLower(artifact.Metadata.Category)] {
		return strings.ToLower(artifact.Metadata.Category)
	}
	for _, tag := range artifact.Metadata.Tags {
		lowered := strings.ToLower(tag)
		for _, rule := range metadataTagRules {
			if strings.Contains(lowered, rule.substring) {
				return rule.category
			}
		}
	}

	return CategoryGeneral
}

// KnownCategory reports whether category belongs to the fixed closed set.
func KnownCategory(category string) bool {
	return knownCategories[category]
}
