// internal/pipeline/crawler.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"brandsignal/internal/analysis/mentions"
	"brandsignal/internal/analysis/scoring"
	"brandsignal/internal/analysis/sentiment"
	stderrors "brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/common/metrics"
	"brandsignal/internal/models"
)

// Crawler fans out over source capabilities the same way the gateway fans
// out over providers. Items that never mention the brand are dropped; a
// failed source contributes nothing but never fails its siblings.
type Crawler struct {
	opts       Options
	detector   *mentions.Detector
	classifier *sentiment.Classifier
	logger     logger.Logger
}

func NewCrawler(opts Options, log logger.Logger) *Crawler {
	return &Crawler{
		opts:       opts,
		detector:   mentions.NewDetector(),
		classifier: sentiment.NewClassifier(),
		logger:     log.WithFields(map[string]interface{}{"component": "crawler"}),
	}
}

// Crawl fetches from every viable source concurrently and scores each item
// that actually mentions the brand. Each fetch is preceded by a short delay
// so bursts of sources do not hammer upstream feeds.
func (c *Crawler) Crawl(ctx context.Context, brandName string, sources []SourceCapability, opts models.CrawlOptions) []models.SourceItem {
	viable := ViableSources(sources)
	if len(viable) == 0 {
		return []models.SourceItem{}
	}

	perSource := make([][]models.SourceItem, len(viable))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(c.opts.MaxConcurrency)

	for i, source := range viable {
		grp.Go(func() error {
			perSource[i] = c.crawlSource(grpCtx, brandName, source, opts)
			return nil
		})
	}
	_ = grp.Wait()

	items := make([]models.SourceItem, 0)
	for _, batch := range perSource {
		items = append(items, batch...)
	}
	return items
}

func (c *Crawler) crawlSource(ctx context.Context, brandName string, source SourceCapability, opts models.CrawlOptions) (items []models.SourceItem) {
	name := source.Name()
	started := time.Now()

	metrics.TasksInFlight.WithLabelValues(name).Inc()
	defer metrics.TasksInFlight.WithLabelValues(name).Dec()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("source task panicked", map[string]interface{}{
				"source": name,
				"panic":  fmt.Sprint(r),
			})
			metrics.TasksFailed.WithLabelValues(name, "SOURCE_FETCH_FAILED").Inc()
			items = []models.SourceItem{}
		}
	}()

	// Politeness delay before every fetch, cancellation-aware.
	if c.opts.MinSourceDelay > 0 {
		select {
		case <-ctx.Done():
			return []models.SourceItem{}
		case <-time.After(c.opts.MinSourceDelay):
		}
	}

	raw, err := c.fetchWithRetry(ctx, source, brandName, opts)
	if err != nil {
		c.logger.Warn("source fetch degraded", map[string]interface{}{
			"source": name,
			"error":  err.Error(),
		})
		metrics.TasksFailed.WithLabelValues(name, sourceErrorCodeFor(err)).Inc()
		return []models.SourceItem{}
	}

	items = make([]models.SourceItem, 0, len(raw))
	for _, item := range raw {
		text := item.Title + " " + item.Content
		detected := c.detector.Detect(text, brandName)
		if len(detected) == 0 {
			continue
		}
		classified := c.classifier.Classify(text, brandName)
		items = append(items, models.SourceItem{
			Source:           name,
			URL:              item.URL,
			Title:            item.Title,
			Content:          item.Content,
			Mentions:         detected,
			Sentiment:        classified,
			PublishedAt:      item.PublishedAt,
			CredibilityScore: scoring.CredibilityScoreWeighted(item, source.Weight()),
		})
	}

	metrics.TasksCompleted.WithLabelValues(name).Inc()
	metrics.TaskDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())

	return items
}

func (c *Crawler) fetchWithRetry(ctx context.Context, source SourceCapability, brandName string, opts models.CrawlOptions) ([]models.RawItem, error) {
	var lastErr error
	backoff := c.opts.RetryBackoff

	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.opts.TaskTimeout)
		raw, err := source.Fetch(attemptCtx, brandName, opts)
		cancel()

		if err == nil {
			return raw, nil
		}
		lastErr = err

		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) && !stdErr.Retryable {
			return nil, err
		}

		if attempt < c.opts.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return nil, lastErr
}

func sourceErrorCodeFor(err error) string {
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return string(stderrors.ErrCodeSourceTimeout)
	}
	return string(stderrors.ErrCodeSourceFetchFailed)
}
