// internal/artifact/categorizer/relationships.go
package categorizer

import (
	"sort"
	"strings"
	"time"

	"brandsignal/internal/models"
)

const maxRelated = 10

// findRelated scores artifact against every candidate and returns the
// strongest edges: merged across relationship kinds, sorted by strength
// descending, one edge per target, at most ten.
func findRelated(artifact models.Artifact, candidates []models.Artifact) []models.RelationshipEdge {
	edges := make([]models.RelationshipEdge, 0)
	for _, candidate := range candidates {
		if candidate.ID == artifact.ID {
			continue
		}
		edges = append(edges, scorePair(artifact, candidate)...)
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Strength > edges[j].Strength
	})

	seen := make(map[string]bool)
	out := make([]models.RelationshipEdge, 0, maxRelated)
	for _, edge := range edges {
		if seen[edge.ToID] {
			continue
		}
		seen[edge.ToID] = true
		out = append(out, edge)
		if len(out) == maxRelated {
			break
		}
	}
	return out
}

// scorePair produces every applicable relationship edge between two
// artifacts.
func scorePair(a, b models.Artifact) []models.RelationshipEdge {
	edges := make([]models.RelationshipEdge, 0, 5)

	brandA := contentBrand(a)
	brandB := contentBrand(b)
	if brandA != "" && brandA == brandB {
		edges = append(edges, edge(a, b, models.RelationBrand, 0.9))
	}

	categoryA := determineCategory(a)
	categoryB := determineCategory(b)
	sameCategory := categoryA == categoryB && categoryA != CategoryGeneral
	if sameCategory {
		edges = append(edges, edge(a, b, models.RelationCategory, 0.7))
	}

	overlap := keywordOverlap(a, b)
	if overlap > 0 {
		edges = append(edges, edge(a, b, models.RelationKeyword, overlap*0.6))
	}

	tsA := a.Metadata.Timestamp
	tsB := b.Metadata.Timestamp
	if !tsA.IsZero() && !tsB.IsZero() {
		edges = append(edges, edge(a, b, models.RelationTime, temporalStrength(tsA.Sub(tsB).Abs())))
	}

	similarity := 0.0
	if strings.EqualFold(strings.TrimSpace(a.Type), strings.TrimSpace(b.Type)) && a.Type != "" {
		similarity += 0.3
	}
	if sameCategory {
		similarity += 0.2
	}
	similarity += overlap * 0.3
	if brandA != "" && brandA == brandB {
		similarity += 0.2
	}
	if similarity > 0.3 {
		edges = append(edges, edge(a, b, models.RelationSimilarity, similarity/2))
	}

	return edges
}

func edge(a, b models.Artifact, kind models.RelationshipKind, strength float64) models.RelationshipEdge {
	return models.RelationshipEdge{
		FromID:   a.ID,
		ToID:     b.ID,
		Kind:     kind,
		Strength: strength,
	}
}

func contentBrand(artifact models.Artifact) string {
	brand, _ := artifact.Content["brandName"].(string)
	return strings.ToLower(strings.TrimSpace(brand))
}

// keywordOverlap is the Jaccard overlap of the two targetKeywords sets.
func keywordOverlap(a, b models.Artifact) float64 {
	setA := keywordSet(a)
	setB := keywordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for keyword := range setA {
		if setB[keyword] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func keywordSet(artifact models.Artifact) map[string]bool {
	set := make(map[string]bool)
	for _, keyword := range contentStrings(artifact.Content, "targetKeywords") {
		normalized := strings.ToLower(strings.TrimSpace(keyword))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

func temporalStrength(age time.Duration) float64 {
	switch {
	case age < time.Hour:
		return 0.8
	case age < 24*time.Hour:
		return 0.6
	case age < 168*time.Hour:
		return 0.4
	case age < 720*time.Hour:
		return 0.2
	default:
		return 0.1
	}
}
