// internal/models/report.go
package models

import "time"

// BrandShare is one brand's slice of the comparison set. Shares across the
// primary brand and all competitors sum to exactly 100 when any brand scored,
// and are all zero when the total composite score is zero.
type BrandShare struct {
	Brand          string  `json:"brand"`
	CompositeScore int     `json:"compositeScore"`
	SharePercent   float64 `json:"sharePercent"`
}

// GapKind labels a detected competitive gap.
type GapKind string

const (
	GapVisibility      GapKind = "visibility"
	GapSentiment       GapKind = "sentiment"
	GapMentions        GapKind = "mentions"
	GapInnovation      GapKind = "innovation"
	GapDifferentiation GapKind = "differentiation"
)

// CompetitiveGap is one flagged weakness or opportunity.
type CompetitiveGap struct {
	Kind        GapKind `json:"kind"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
}

// AggregateReport is the single roll-up of one analysis request. It is built
// once per request and read-only to downstream consumers.
type AggregateReport struct {
	BrandName         string           `json:"brandName"`
	GeneratedAt       time.Time        `json:"generatedAt"`
	ProviderResults   []ProviderResult `json:"providerResults,omitempty"`
	SourceItems       []SourceItem     `json:"sourceItems,omitempty"`
	OverallVisibility int              `json:"overallVisibility"`
	OverallSentiment  Sentiment        `json:"overallSentiment"`
	TotalMentions     int              `json:"totalMentions"`
	MarketShare       float64          `json:"marketShare"`
	ShareOfVoice      []BrandShare     `json:"shareOfVoice,omitempty"`
	CompetitiveGaps   []CompetitiveGap `json:"competitiveGaps,omitempty"`
	Insights          []string         `json:"insights"`
	Recommendations   []string         `json:"recommendations"`
	Degraded          bool             `json:"degraded,omitempty"`
}
