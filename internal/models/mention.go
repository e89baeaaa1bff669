// internal/models/mention.go
package models

// MentionKind distinguishes literal brand matches from generated variants.
type MentionKind string

const (
	MentionExact MentionKind = "exact"
	MentionFuzzy MentionKind = "fuzzy"
)

// Mention is a single brand occurrence inside a text blob.
// Positions are byte offsets into the analyzed text and are unique per
// occurrence. Exact matches carry confidence 1.0, fuzzy matches [0.5, 1.0).
type Mention struct {
	Text       string      `json:"text"`
	Position   int         `json:"position"`
	Kind       MentionKind `json:"kind"`
	Confidence float64     `json:"confidence"`
	Context    string      `json:"context,omitempty"`
}
