// internal/artifact/categorizer/categorizer.go
// Package categorizer classifies pipeline artifacts: category, normalized
// tags, priority, confidence, and relationships to sibling artifacts.
package categorizer

import (
	"fmt"
	"time"

	"brandsignal/internal/common/logger"
	"brandsignal/internal/common/metrics"
	"brandsignal/internal/models"
)

// Categorizer runs the single-pass classification waterfall. It is stateless
// apart from its clock and safe for concurrent use.
type Categorizer struct {
	now    func() time.Time
	logger logger.Logger
}

func New(log logger.Logger) *Categorizer {
	return &Categorizer{
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"component": "categorizer"}),
	}
}

// NewWithClock fixes the clock for deterministic recency tags in tests.
func NewWithClock(log logger.Logger, now func() time.Time) *Categorizer {
	c := New(log)
	c.now = now
	return c
}

// CategorizeArtifact classifies one artifact in isolation. Relationships
// require a batch; the related list is empty here. Any fault inside the
// waterfall yields the fallback classification instead of an error.
func (c *Categorizer) CategorizeArtifact(artifact models.Artifact) models.CategorizedArtifact {
	return c.categorizeWith(artifact, nil)
}

// CategorizeMany classifies a batch, computing relationships within it. A
// fault on one artifact never affects its siblings.
func (c *Categorizer) CategorizeMany(artifacts []models.Artifact) []models.CategorizedArtifact {
	out := make([]models.CategorizedArtifact, len(artifacts))
	for i, artifact := range artifacts {
		out[i] = c.categorizeWith(artifact, artifacts)
	}
	return out
}

func (c *Categorizer) categorizeWith(artifact models.Artifact, siblings []models.Artifact) (result models.CategorizedArtifact) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("categorization fault, using fallback", map[string]interface{}{
				"artifactId": artifact.ID,
				"panic":      fmt.Sprint(r),
			})
			result = fallback(artifact)
		}
	}()

	category := determineCategory(artifact)
	metrics.ArtifactsCategorized.WithLabelValues(category).Inc()

	related := make([]string, 0)
	for _, edge := range findRelated(artifact, siblings) {
		related = append(related, edge.ToID)
	}

	return models.CategorizedArtifact{
		Artifact:           artifact,
		Category:           category,
		Tags:               extractTags(artifact, c.now()),
		Priority:           computePriority(artifact),
		RelatedArtifactIDs: related,
		Confidence:         computeConfidence(artifact, category),
	}
}

// fallback is the classification used when the waterfall faults.
func fallback(artifact models.Artifact) models.CategorizedArtifact {
	return models.CategorizedArtifact{
		Artifact:           artifact,
		Category:           CategoryGeneral,
		Tags:               []string{},
		Priority:           3,
		RelatedArtifactIDs: []string{},
		Confidence:         0.5,
	}
}
