// internal/artifact/wrap_test.go
package artifact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandsignal/internal/models"
)

func TestNewReportArtifact_SingleBrand(t *testing.T) {
	generated := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	report := &models.AggregateReport{
		BrandName:         "Tesla",
		GeneratedAt:       generated,
		OverallVisibility: 72,
		OverallSentiment:  models.SentimentPositive,
		TotalMentions:     9,
	}

	a := NewReportArtifact(report)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "brand-monitor-report", a.Type)
	assert.Equal(t, "Tesla brand analysis", a.Title)
	assert.Equal(t, "Tesla", a.Content["brandName"])
	assert.Equal(t, float64(72), a.Content["overallScore"])
	assert.Equal(t, "positive", a.Content["overallSentiment"])
	assert.Equal(t, generated, a.Metadata.Timestamp)
	assert.Equal(t, "brandsignal-pipeline", a.Metadata.GeneratedBy)
	assert.NotContains(t, a.Content, "competitors")
}

func TestNewReportArtifact_Competitive(t *testing.T) {
	report := &models.AggregateReport{
		BrandName:   "Tesla",
		MarketShare: 54.5,
		ShareOfVoice: []models.BrandShare{
			{Brand: "Tesla", SharePercent: 54.5},
			{Brand: "Rivian", SharePercent: 30.25},
			{Brand: "Lucid", SharePercent: 15.25},
		},
	}

	a := NewReportArtifact(report)

	assert.Equal(t, "competitive-intelligence", a.Type)
	assert.Equal(t, []string{"Rivian", "Lucid"}, a.Content["competitors"])
	assert.Equal(t, 54.5, a.Content["marketShare"])
	require.False(t, a.Metadata.Timestamp.IsZero())
}
