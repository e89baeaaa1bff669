// internal/artifact/categorizer/graph.go
package categorizer

import (
	"fmt"

	"brandsignal/internal/models"
)

// BuildRelationshipGraph assembles nodes and scored edges across an artifact
// set. A relationship fault on one artifact drops only that artifact's
// outgoing edges; its node and the rest of the graph survive.
func (c *Categorizer) BuildRelationshipGraph(artifacts []models.Artifact) models.RelationshipGraph {
	graph := models.RelationshipGraph{
		Nodes: make([]models.ArtifactSummary, 0, len(artifacts)),
		Edges: make([]models.RelationshipEdge, 0),
	}

	for _, artifact := range artifacts {
		graph.Nodes = append(graph.Nodes, models.ArtifactSummary{
			ID:       artifact.ID,
			Type:     artifact.Type,
			Title:    artifact.Title,
			Category: safeCategory(artifact),
		})
		graph.Edges = append(graph.Edges, c.edgesFor(artifact, artifacts)...)
	}

	return graph
}

func (c *Categorizer) edgesFor(artifact models.Artifact, artifacts []models.Artifact) (edges []models.RelationshipEdge) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("relationship fault, skipping artifact edges", map[string]interface{}{
				"artifactId": artifact.ID,
				"panic":      fmt.Sprint(r),
			})
			edges = nil
		}
	}()
	return findRelated(artifact, artifacts)
}

// safeCategory never lets a category fault break node construction.
func safeCategory(artifact models.Artifact) (category string) {
	defer func() {
		if recover() != nil {
			category = CategoryGeneral
		}
	}()
	return determineCategory(artifact)
}
