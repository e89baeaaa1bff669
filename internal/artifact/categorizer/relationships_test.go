// internal/artifact/categorizer/relationships_test.go
package categorizer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

func relArtifact(id, artifactType, brand string, keywords []string, ts time.Time) models.Artifact {
	content := models.ArtifactContent{}
	if brand != "" {
		content["brandName"] = brand
	}
	if keywords != nil {
		content["targetKeywords"] = keywords
	}
	return models.Artifact{
		ID:       id,
		Type:     artifactType,
		Title:    id,
		Content:  content,
		Metadata: models.ArtifactMetadata{Timestamp: ts},
	}
}

func TestFindRelated_BrandMatchIsStrongest(t *testing.T) {
	a := relArtifact("a", "visibility-matrix", "Tesla", nil, testNow)
	b := relArtifact("b", "sentiment-report", "Tesla", nil, testNow.Add(-30*time.Minute))

	edges := findRelated(a, []models.Artifact{a, b})
	require.Len(t, edges, 1, "edges are deduplicated by target")

	edge := edges[0]
	assert.Equal(t, "a", edge.FromID)
	assert.Equal(t, "b", edge.ToID)
	assert.Equal(t, models.RelationBrand, edge.Kind)
	assert.Equal(t, 0.9, edge.Strength)
}

func TestFindRelated_CategoryEdge(t *testing.T) {
	a := relArtifact("a", "visibility-matrix", "Tesla", nil, time.Time{})
	b := relArtifact("b", "visibility-matrix", "Rivian", nil, time.Time{})

	edges := findRelated(a, []models.Artifact{b})
	require.Len(t, edges, 1)
	assert.Equal(t, models.RelationCategory, edges[0].Kind)
	assert.Equal(t, 0.7, edges[0].Strength)
}

func TestFindRelated_KeywordOverlap(t *testing.T) {
	// Distinct mapped types keep the categories apart so only the keyword
	// edge fires.
	a := relArtifact("a", "visibility-matrix", "", []string{"ev", "batteries", "charging"}, time.Time{})
	b := relArtifact("b", "competitive-intelligence", "", []string{"ev", "batteries", "solar"}, time.Time{})

	edges := findRelated(a, []models.Artifact{b})
	require.Len(t, edges, 1)
	assert.Equal(t, models.RelationKeyword, edges[0].Kind)
	// Jaccard 2/4 = 0.5, scaled by 0.6.
	assert.InDelta(t, 0.3, edges[0].Strength, 1e-9)
}

func TestFindRelated_TemporalBuckets(t *testing.T) {
	tests := []struct {
		gap  time.Duration
		want float64
	}{
		{30 * time.Minute, 0.8},
		{5 * time.Hour, 0.6},
		{3 * 24 * time.Hour, 0.4},
		{20 * 24 * time.Hour, 0.2},
		{60 * 24 * time.Hour, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.gap.String(), func(t *testing.T) {
			a := relArtifact("a", "x-report", "", nil, testNow)
			b := relArtifact("b", "y-report", "", nil, testNow.Add(-tt.gap))

			edges := findRelated(a, []models.Artifact{b})
			require.Len(t, edges, 1)
			assert.Equal(t, models.RelationTime, edges[0].Kind)
			assert.Equal(t, tt.want, edges[0].Strength)
		})
	}
}

func TestFindRelated_SimilarityAtHalfWeight(t *testing.T) {
	// Same type, same category, same brand: similarity 0.3+0.2+0.2 = 0.7,
	// contributing 0.35. The brand edge at 0.9 still wins the dedup.
	a := relArtifact("a", "visibility-matrix", "Tesla", nil, time.Time{})
	b := relArtifact("b", "visibility-matrix", "Tesla", nil, time.Time{})

	raw := scorePair(a, b)

	var similarity *models.RelationshipEdge
	for i := range raw {
		if raw[i].Kind == models.RelationSimilarity {
			similarity = &raw[i]
		}
	}
	require.NotNil(t, similarity)
	assert.InDelta(t, 0.35, similarity.Strength, 1e-9)

	edges := findRelated(a, []models.Artifact{b})
	require.Len(t, edges, 1)
	assert.Equal(t, models.RelationBrand, edges[0].Kind)
}

func TestFindRelated_WeakSimilarityDropped(t *testing.T) {
	// Type match alone: similarity 0.3, not above the threshold.
	a := relArtifact("a", "custom-report", "Tesla", nil, time.Time{})
	b := relArtifact("b", "custom-report", "Rivian", nil, time.Time{})

	for _, edge := range scorePair(a, b) {
		assert.NotEqual(t, models.RelationSimilarity, edge.Kind)
	}
}

func TestFindRelated_TopTenByStrength(t *testing.T) {
	center := relArtifact("center", "visibility-matrix", "Tesla", nil, testNow)

	candidates := []models.Artifact{center}
	for i := 0; i < 15; i++ {
		candidates = append(candidates, relArtifact(fmt.Sprintf("c%d", i), "visibility-matrix", "Tesla", nil, testNow))
	}

	edges := findRelated(center, candidates)
	assert.Len(t, edges, 10)
	for i := 1; i < len(edges); i++ {
		assert.GreaterOrEqual(t, edges[i-1].Strength, edges[i].Strength)
	}
}

func TestBuildRelationshipGraph(t *testing.T) {
	c := newTestCategorizer(t)

	a := relArtifact("a", "visibility-matrix", "Tesla", nil, testNow)
	b := relArtifact("b", "visibility-matrix", "Tesla", nil, testNow)
	loner := relArtifact("loner", "unknown-type", "", nil, time.Time{})

	graph := c.BuildRelationshipGraph([]models.Artifact{a, b, loner})

	require.Len(t, graph.Nodes, 3)
	assert.Equal(t, CategoryBrandVisibility, graph.Nodes[0].Category)
	assert.Equal(t, CategoryGeneral, graph.Nodes[2].Category)

	require.NotEmpty(t, graph.Edges)
	for _, edge := range graph.Edges {
		assert.NotEqual(t, edge.FromID, edge.ToID)
		assert.NotEqual(t, "loner", edge.FromID)
		assert.NotEqual(t, "loner", edge.ToID)
	}
}

func TestBuildRelationshipGraph_Empty(t *testing.T) {
	c := NewWithClock(logger.NewNoOpLogger(), func() time.Time { return testNow })

	graph := c.BuildRelationshipGraph(nil)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
}
