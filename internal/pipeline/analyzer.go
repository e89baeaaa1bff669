// internal/pipeline/analyzer.go
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brandsignal/internal/analysis/insights"
	"brandsignal/internal/analysis/mentions"
	"brandsignal/internal/analysis/scoring"
	"brandsignal/internal/analysis/sentiment"
	"brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/common/validation"
	"brandsignal/internal/models"
)

// Analyzer is the top-level pipeline facade. It validates the request, fans
// out to providers, reduces the raw signal into one aggregate report, and
// consults the report cache around the whole exchange.
type Analyzer struct {
	gateway    *Gateway
	crawler    *Crawler
	cache      *ReportCache
	generator  *insights.Generator
	detector   *mentions.Detector
	classifier *sentiment.Classifier
	providers  []ProviderCapability
	sources    []SourceCapability
	logger     logger.Logger
}

func NewAnalyzer(gateway *Gateway, crawler *Crawler, cache *ReportCache, providers []ProviderCapability, sources []SourceCapability, log logger.Logger) *Analyzer {
	return &Analyzer{
		gateway:    gateway,
		crawler:    crawler,
		cache:      cache,
		generator:  insights.NewGenerator(),
		detector:   mentions.NewDetector(),
		classifier: sentiment.NewClassifier(),
		providers:  providers,
		sources:    sources,
		logger:     log.WithFields(map[string]interface{}{"component": "analyzer"}),
	}
}

// DefaultPrompts builds the prompt set used against every provider.
func DefaultPrompts(brandName string) []string {
	return []string{
		fmt.Sprintf("What do you know about the brand %s? Describe its market position and reputation.", brandName),
		fmt.Sprintf("How is %s perceived by consumers and the industry?", brandName),
		fmt.Sprintf("What are the strengths and weaknesses of %s compared to its competitors?", brandName),
	}
}

// AnalyzeBrand runs the full single-brand analysis. A cached report is
// returned as-is when present. When every provider task fails the report is
// still produced, marked degraded, with explanatory insight text.
func (a *Analyzer) AnalyzeBrand(ctx context.Context, brandName string) (*models.AggregateReport, error) {
	if v := validation.ValidateBrandName(brandName); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}

	prompts := DefaultPrompts(brandName)
	key := CacheKey(brandName, nil, prompts)
	if cached, ok := a.cache.Get(ctx, key); ok {
		a.logger.Debug("report cache hit", map[string]interface{}{"brand": brandName})
		return cached, nil
	}

	results := a.gateway.RunBatch(ctx, brandName, prompts, a.providers)
	if len(results) == 0 {
		// Whole-batch unavailability degrades like an all-failed batch; only
		// validation rejects.
		batchErr := errors.NewBatchUnavailableError("no viable providers configured")
		a.logger.Warn("provider batch unavailable, producing degraded report", map[string]interface{}{
			"brand": brandName,
			"error": batchErr.Error(),
		})
	}

	report := a.buildReport(brandName, results)
	if !report.Degraded {
		a.cache.Set(ctx, key, report)
	}
	return report, nil
}

// CompareBrands analyzes the primary brand against each competitor and
// computes share of voice, market share, and competitive gaps on top of the
// primary brand's report.
func (a *Analyzer) CompareBrands(ctx context.Context, brandName string, competitors []string) (*models.AggregateReport, error) {
	if v := validation.ValidateBrandName(brandName); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}
	if v := validation.ValidateCompetitors(competitors); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}

	report, err := a.AnalyzeBrand(ctx, brandName)
	if err != nil {
		return nil, err
	}

	primary := signalFromReport(report)
	competitorSignals := make([]scoring.BrandSignal, 0, len(competitors))
	for _, competitor := range competitors {
		competitorReport, err := a.AnalyzeBrand(ctx, competitor)
		if err != nil {
			a.logger.Warn("competitor analysis degraded", map[string]interface{}{
				"competitor": competitor,
				"error":      err.Error(),
			})
			competitorSignals = append(competitorSignals, scoring.BrandSignal{Brand: competitor})
			continue
		}
		competitorSignals = append(competitorSignals, signalFromReport(competitorReport))
	}

	report.ShareOfVoice = scoring.ShareOfVoice(primary, competitorSignals)
	report.MarketShare = scoring.MarketShare(primary, competitorSignals)
	report.CompetitiveGaps = scoring.DetectGaps(primary, competitorSignals, positiveRatio(report.ProviderResults))

	// Regenerate with the comparison signal available.
	report.Insights = a.generator.Generate(report)
	report.Recommendations = a.generator.Recommend(report)
	return report, nil
}

// CrawlSources runs the source crawl and folds the scored items into a
// report. Provider analysis is not involved.
func (a *Analyzer) CrawlSources(ctx context.Context, brandName string, opts models.CrawlOptions) (*models.AggregateReport, error) {
	if v := validation.ValidateBrandName(brandName); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}

	items := a.crawler.Crawl(ctx, brandName, a.sources, opts)

	totalMentions := 0
	sentiments := make([]models.Sentiment, 0, len(items))
	for _, item := range items {
		totalMentions += len(item.Mentions)
		sentiments = append(sentiments, item.Sentiment.Overall)
	}

	report := &models.AggregateReport{
		BrandName:        brandName,
		GeneratedAt:      time.Now().UTC(),
		SourceItems:      items,
		OverallSentiment: scoring.AverageSentiment(sentiments),
		TotalMentions:    totalMentions,
	}
	report.Insights = a.generator.Generate(report)
	report.Recommendations = a.generator.Recommend(report)
	return report, nil
}

// AnalyzeContent scores one caller-supplied text against the brand without
// any provider calls: detection, sentiment, and visibility on the given
// content, plus keyword coverage. Content and keyword bounds are enforced up
// front.
func (a *Analyzer) AnalyzeContent(ctx context.Context, brandName, content string, keywords []string) (*models.AggregateReport, error) {
	if v := validation.ValidateBrandName(brandName); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}
	if v := validation.ValidateContent(content); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}
	if v := validation.ValidateKeywords(keywords); !v.Valid {
		return nil, errors.NewValidationError(v.ErrorString())
	}

	detected := a.detector.Detect(content, brandName)
	classified := a.classifier.Classify(content, brandName)

	snippets := make([]string, 0, len(detected))
	for _, m := range detected {
		if m.Context != "" {
			snippets = append(snippets, m.Context)
		}
	}

	result := models.ProviderResult{
		ProviderName:    "content",
		RawText:         content,
		MentionCount:    len(detected),
		ContextSnippets: snippets,
		Sentiment:       classified,
		VisibilityScore: scoring.VisibilityScore(len(detected), content, classified.Overall),
		Succeeded:       true,
	}

	report := a.buildReport(brandName, []models.ProviderResult{result})

	covered := 0
	lowered := strings.ToLower(content)
	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(strings.TrimSpace(keyword))) {
			covered++
		}
	}
	report.Insights = append(report.Insights,
		fmt.Sprintf("%d of %d target keywords appear in the content.", covered, len(keywords)))

	return report, nil
}

// buildReport reduces the provider batch into one aggregate report. All-failed
// batches yield a degraded report rather than an error.
func (a *Analyzer) buildReport(brandName string, results []models.ProviderResult) *models.AggregateReport {
	report := &models.AggregateReport{
		BrandName:       brandName,
		GeneratedAt:     time.Now().UTC(),
		ProviderResults: results,
	}

	succeeded := 0
	sentiments := make([]models.Sentiment, 0, len(results))
	for _, r := range results {
		report.TotalMentions += r.MentionCount
		if r.Succeeded {
			succeeded++
			sentiments = append(sentiments, r.Sentiment.Overall)
		}
	}

	report.OverallVisibility = scoring.OverallVisibility(results)
	report.OverallSentiment = scoring.AverageSentiment(sentiments)

	if succeeded == 0 {
		report.Degraded = true
		report.OverallSentiment = models.SentimentNeutral
		report.Insights = []string{
			"Analysis could not be completed: every provider query failed.",
			fmt.Sprintf("No signal was collected for %s in this run.", brandName),
		}
		report.Recommendations = []string{
			"Please check your input and try again.",
			"Verify provider credentials and network connectivity.",
		}
		return report
	}

	report.Insights = a.generator.Generate(report)
	report.Recommendations = a.generator.Recommend(report)
	return report
}

func signalFromReport(report *models.AggregateReport) scoring.BrandSignal {
	succeeded := false
	for _, r := range report.ProviderResults {
		if r.Succeeded {
			succeeded = true
			break
		}
	}
	return scoring.BrandSignal{
		Brand:      report.BrandName,
		Visibility: report.OverallVisibility,
		Sentiment:  report.OverallSentiment,
		Mentions:   report.TotalMentions,
		Succeeded:  succeeded,
	}
}

// positiveRatio is the fraction of succeeded provider results whose overall
// sentiment is positive.
func positiveRatio(results []models.ProviderResult) float64 {
	succeeded, positive := 0, 0
	for _, r := range results {
		if !r.Succeeded {
			continue
		}
		succeeded++
		if r.Sentiment.Overall == models.SentimentPositive {
			positive++
		}
	}
	if succeeded == 0 {
		return 0
	}
	return float64(positive) / float64(succeeded)
}
