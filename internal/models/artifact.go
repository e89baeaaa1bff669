// internal/models/artifact.go
package models

import "time"

// ArtifactMetadata carries descriptive fields used by categorization.
type ArtifactMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	GeneratedBy string    `json:"generatedBy,omitempty"`
	OwnerIDs    []string  `json:"ownerIds,omitempty"`
}

// ArtifactContent is the loosely structured payload of an artifact. The
// categorizer reads well-known fields from it but tolerates any shape,
// including a nil map.
type ArtifactContent map[string]interface{}

// Artifact wraps one pipeline output for persistence and categorization.
type Artifact struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Title    string           `json:"title"`
	Content  ArtifactContent  `json:"content"`
	Metadata ArtifactMetadata `json:"metadata"`
}

// CategorizedArtifact augments an Artifact with classification output. The
// original artifact fields are never removed or rewritten.
type CategorizedArtifact struct {
	Artifact
	Category           string   `json:"category"`
	Tags               []string `json:"tags"`
	Priority           int      `json:"priority"`
	RelatedArtifactIDs []string `json:"relatedArtifactIds"`
	Confidence         float64  `json:"confidence"`
}

// RelationshipKind labels why two artifacts are related.
type RelationshipKind string

const (
	RelationBrand      RelationshipKind = "brand"
	RelationCategory   RelationshipKind = "category"
	RelationKeyword    RelationshipKind = "keyword"
	RelationTime       RelationshipKind = "time"
	RelationSimilarity RelationshipKind = "similarity"
)

// RelationshipEdge is one scored link between two artifacts.
type RelationshipEdge struct {
	FromID   string           `json:"fromId"`
	ToID     string           `json:"toId"`
	Kind     RelationshipKind `json:"kind"`
	Strength float64          `json:"strength"`
}

// ArtifactSummary is the node payload in a relationship graph.
type ArtifactSummary struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// RelationshipGraph holds scored relationships across a set of artifacts.
type RelationshipGraph struct {
	Nodes []ArtifactSummary  `json:"nodes"`
	Edges []RelationshipEdge `json:"edges"`
}
