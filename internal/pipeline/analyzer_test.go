// internal/pipeline/analyzer_test.go
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

func newTestAnalyzer(t *testing.T, providers []ProviderCapability, sources []SourceCapability) *Analyzer {
	t.Helper()

	log := logger.NewTestLogger(t)
	opts := testOptions()
	cache, _ := newTestCache(t, time.Minute)
	return NewAnalyzer(NewGateway(opts, log), NewCrawler(opts, log), cache, providers, sources, log)
}

func positiveProvider(name, brand string) *fakeProvider {
	return &fakeProvider{
		name:     name,
		viable:   true,
		response: brand + " is an excellent, innovative leader in the market. Consumers find " + brand + " reliable.",
	}
}

func TestAnalyzer_AnalyzeBrand_HappyPath(t *testing.T) {
	a := newTestAnalyzer(t, []ProviderCapability{
		positiveProvider("alpha", "Tesla"),
		positiveProvider("beta", "Tesla"),
	}, nil)

	report, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)

	assert.Equal(t, "Tesla", report.BrandName)
	assert.False(t, report.Degraded)
	assert.Len(t, report.ProviderResults, 2)
	assert.Greater(t, report.OverallVisibility, 0)
	assert.Equal(t, models.SentimentPositive, report.OverallSentiment)
	assert.Greater(t, report.TotalMentions, 0)
	assert.NotEmpty(t, report.Insights)
	assert.NotEmpty(t, report.Recommendations)
	assert.LessOrEqual(t, len(report.Insights), 6)
	assert.LessOrEqual(t, len(report.Recommendations), 7)
}

func TestAnalyzer_AnalyzeBrand_RejectsInvalidBrand(t *testing.T) {
	a := newTestAnalyzer(t, []ProviderCapability{positiveProvider("alpha", "Tesla")}, nil)

	for _, brand := range []string{"", "   "} {
		_, err := a.AnalyzeBrand(context.Background(), brand)
		require.Error(t, err)

		var stdErr *stderrors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	}
}

func TestAnalyzer_AnalyzeBrand_NoViableProvidersDegrades(t *testing.T) {
	a := newTestAnalyzer(t, []ProviderCapability{
		&fakeProvider{name: "unconfigured", viable: false},
	}, nil)

	report, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)

	assert.True(t, report.Degraded)
	assert.Zero(t, report.OverallVisibility)
	assert.Equal(t, models.SentimentNeutral, report.OverallSentiment)
	assert.Empty(t, report.ProviderResults)

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "check your input and try again") {
			found = true
		}
	}
	assert.True(t, found, "degraded report should tell the caller to retry")
}

func TestAnalyzer_AnalyzeBrand_DegradedReportIsNotCached(t *testing.T) {
	provider := &fakeProvider{name: "alpha", viable: true, err: errors.New("down")}
	a := newTestAnalyzer(t, []ProviderCapability{provider}, nil)

	first, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)
	require.True(t, first.Degraded)
	callsAfterFirst := atomic.LoadInt32(&provider.calls)

	// The provider recovers; a fresh run must not be served the failure.
	provider.err = nil
	provider.response = "Tesla is excellent and innovative."

	second, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)

	assert.Greater(t, atomic.LoadInt32(&provider.calls), callsAfterFirst)
	assert.False(t, second.Degraded)
	assert.Greater(t, second.TotalMentions, 0)
}

func TestAnalyzer_AnalyzeBrand_AllProvidersFailedDegradedReport(t *testing.T) {
	a := newTestAnalyzer(t, []ProviderCapability{
		&fakeProvider{name: "alpha", viable: true, err: errors.New("down")},
		&fakeProvider{name: "beta", viable: true, err: errors.New("down")},
	}, nil)

	report, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)

	assert.True(t, report.Degraded)
	assert.Zero(t, report.OverallVisibility)
	assert.Equal(t, models.SentimentNeutral, report.OverallSentiment)
	assert.Zero(t, report.TotalMentions)
	assert.Len(t, report.ProviderResults, 2)
	for _, r := range report.ProviderResults {
		assert.False(t, r.Succeeded)
	}
	assert.NotEmpty(t, report.Insights)

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "check your input and try again") {
			found = true
		}
	}
	assert.True(t, found, "degraded report should tell the caller to retry")
}

func TestAnalyzer_AnalyzeBrand_CacheHitSkipsProviders(t *testing.T) {
	provider := positiveProvider("alpha", "Tesla")
	a := newTestAnalyzer(t, []ProviderCapability{provider}, nil)

	first, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)
	callsAfterFirst := atomic.LoadInt32(&provider.calls)

	second, err := a.AnalyzeBrand(context.Background(), "Tesla")
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, atomic.LoadInt32(&provider.calls))
	assert.Equal(t, first.BrandName, second.BrandName)
	assert.Equal(t, first.OverallVisibility, second.OverallVisibility)
	assert.Equal(t, first.TotalMentions, second.TotalMentions)
}

func TestAnalyzer_CompareBrands_SharesSumToHundred(t *testing.T) {
	// One shared response; per-brand scores differ only through mention
	// detection and sentence-scoped sentiment.
	a := newTestAnalyzer(t, []ProviderCapability{
		&fakeProvider{name: "alpha", viable: true, response: "Tesla is excellent and innovative in the market. Rivian is growing. Lucid struggles with poor, disappointing sales."},
	}, nil)

	report, err := a.CompareBrands(context.Background(), "Tesla", []string{"Rivian", "Lucid"})
	require.NoError(t, err)

	require.Len(t, report.ShareOfVoice, 3)
	assert.Equal(t, "Tesla", report.ShareOfVoice[0].Brand)

	sum := 0.0
	for _, share := range report.ShareOfVoice {
		assert.GreaterOrEqual(t, share.SharePercent, 0.0)
		sum += share.SharePercent
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.Equal(t, report.ShareOfVoice[0].SharePercent, report.MarketShare)
	assert.NotEmpty(t, report.CompetitiveGaps)
}

func TestAnalyzer_CompareBrands_AllProvidersFailedZeroShares(t *testing.T) {
	a := newTestAnalyzer(t, []ProviderCapability{
		&fakeProvider{name: "alpha", viable: true, err: errors.New("down")},
	}, nil)

	report, err := a.CompareBrands(context.Background(), "Tesla", []string{"Ford", "GM"})
	require.NoError(t, err)

	assert.True(t, report.Degraded)
	assert.Equal(t, 0.0, report.MarketShare)
	require.Len(t, report.ShareOfVoice, 3)
	for _, share := range report.ShareOfVoice {
		assert.Equal(t, 0, share.CompositeScore, share.Brand)
		assert.Equal(t, 0.0, share.SharePercent, share.Brand)
	}
}

func TestAnalyzer_CompareBrands_RejectsTooManyCompetitors(t *testing.T) {
	a := newTestAnalyzer(t, []ProviderCapability{positiveProvider("alpha", "Tesla")}, nil)

	competitors := make([]string, 11)
	for i := range competitors {
		competitors[i] = "competitor"
	}

	_, err := a.CompareBrands(context.Background(), "Tesla", competitors)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
}

func TestAnalyzer_AnalyzeContent(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)

	content := "Tesla is an excellent and innovative company. The market loves Tesla's growth in electric vehicles."
	report, err := a.AnalyzeContent(context.Background(), "Tesla", content, []string{"electric vehicles", "batteries"})
	require.NoError(t, err)

	require.Len(t, report.ProviderResults, 1)
	assert.Equal(t, "content", report.ProviderResults[0].ProviderName)
	assert.Equal(t, 2, report.ProviderResults[0].MentionCount)
	assert.Equal(t, models.SentimentPositive, report.OverallSentiment)
	assert.Contains(t, report.Insights, "1 of 2 target keywords appear in the content.")
}

func TestAnalyzer_AnalyzeContent_ValidationBounds(t *testing.T) {
	a := newTestAnalyzer(t, nil, nil)

	tests := []struct {
		name     string
		content  string
		keywords []string
	}{
		{"content too short", "tiny", []string{"kw"}},
		{"content too long", strings.Repeat("a", 10001), []string{"kw"}},
		{"no keywords", "this content is long enough to pass", nil},
		{"too many keywords", "this content is long enough to pass", make([]string, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.AnalyzeContent(context.Background(), "Tesla", tt.content, tt.keywords)
			require.Error(t, err)

			var stdErr *stderrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
		})
	}
}

func TestAnalyzer_CrawlSources_BuildsReportFromItems(t *testing.T) {
	sources := []SourceCapability{
		&fakeSource{name: "news", viable: true, weight: 0.9, items: []models.RawItem{
			rawItem("Acme praised for excellent support", "Acme has reliable, innovative products.", 200),
			rawItem("Off topic", "Nothing relevant in this one.", 50),
		}},
	}
	a := newTestAnalyzer(t, nil, sources)

	report, err := a.CrawlSources(context.Background(), "Acme", models.CrawlOptions{Limit: 10})
	require.NoError(t, err)

	require.Len(t, report.SourceItems, 1)
	assert.Equal(t, models.SentimentPositive, report.OverallSentiment)
	assert.Greater(t, report.TotalMentions, 0)
	assert.NotEmpty(t, report.Insights)
}
