// internal/artifact/wrap.go
// Package artifact wraps pipeline reports into persistable artifacts.
package artifact

import (
	"time"

	"github.com/google/uuid"

	"brandsignal/internal/models"
)

// NewReportArtifact wraps one aggregate report for categorization and
// persistence. The content mirrors the report's JSON shape so the
// categorizer's field heuristics apply to it directly.
func NewReportArtifact(report *models.AggregateReport) models.Artifact {
	artifactType := "brand-monitor-report"
	if len(report.ShareOfVoice) > 0 {
		artifactType = "competitive-intelligence"
	}

	content := models.ArtifactContent{
		"brandName":         report.BrandName,
		"overallVisibility": report.OverallVisibility,
		"overallSentiment":  string(report.OverallSentiment),
		"overallScore":      float64(report.OverallVisibility),
		"totalMentions":     report.TotalMentions,
	}
	if len(report.ShareOfVoice) > 0 {
		competitors := make([]string, 0, len(report.ShareOfVoice)-1)
		for _, share := range report.ShareOfVoice[1:] {
			competitors = append(competitors, share.Brand)
		}
		content["competitors"] = competitors
		content["marketShare"] = report.MarketShare
	}

	return models.Artifact{
		ID:      uuid.NewString(),
		Type:    artifactType,
		Title:   report.BrandName + " brand analysis",
		Content: content,
		Metadata: models.ArtifactMetadata{
			Timestamp:   reportTimestamp(report),
			GeneratedBy: "brandsignal-pipeline",
		},
	}
}

func reportTimestamp(report *models.AggregateReport) time.Time {
	if report.GeneratedAt.IsZero() {
		return time.Now().UTC()
	}
	return report.GeneratedAt
}
