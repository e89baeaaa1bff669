// internal/pipeline/gateway.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// Options bounds the fan-out behaviour shared by the gateway and the crawler.
type Options struct {
	MaxConcurrency int
	TaskTimeout    time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	MinSourceDelay time.Duration
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		MaxConcurrency: 8,
		TaskTimeout:    30 * time.Second,
		MaxRetries:     2,
		RetryBackoff:   500 * time.Millisecond,
		MinSourceDelay: 200 * time.Millisecond,
	}
}

// Gateway fans prompt batches out to provider capabilities. One task's
// failure never reaches its siblings: failed tasks yield a degraded result
// that stays in the batch output.
type Gateway struct {
	opts       Options
	detector   *mentions.Detector
	classifier *sentiment.Classifier
	logger     logger.Logger
}

func NewGateway(opts Options, log logger.Logger) *Gateway {
	return &Gateway{
		opts:       opts,
		detector:   mentions.NewDetector(),
		classifier: sentiment.NewClassifier(),
		logger:     log.WithFields(map[string]interface{}{"component": "gateway"}),
	}
}

// RunBatch queries every viable provider concurrently and scores each raw
// response. Result ordering follows the capability list for stability, but
// callers must not rely on it. Caller cancellation yields partial results:
// tasks already completed keep their scores, the rest degrade.
func (g *Gateway) RunBatch(ctx context.Context, brandName string, prompts []string, capabilities []ProviderCapability) []models.ProviderResult {
	viable := ViableProviders(capabilities)
	if len(viable) == 0 || len(prompts) == 0 {
		return []models.ProviderResult{}
	}

	results := make([]models.ProviderResult, len(viable))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(g.opts.MaxConcurrency)

	for i, capability := range viable {
		grp.Go(func() error {
			results[i] = g.runTask(grpCtx, brandName, prompts, capability)
			return nil
		})
	}
	// Tasks never return errors; failures are absorbed into degraded results.
	_ = grp.Wait()

	return results
}

// runTask executes the full prompt set against one provider and reduces the
// combined raw text. Panics and errors degrade this task only.
func (g *Gateway) runTask(ctx context.Context, brandName string, prompts []string, capability ProviderCapability) (result models.ProviderResult) {
	name := capability.Name()
	started := time.Now()

	metrics.TasksInFlight.WithLabelValues(name).Inc()
	defer metrics.TasksInFlight.WithLabelValues(name).Dec()

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("provider task panicked", map[string]interface{}{
				"provider": name,
				"panic":    fmt.Sprint(r),
			})
			metrics.TasksFailed.WithLabelValues(name, "PROVIDER_CALL_FAILED").Inc()
			result = degradedProviderResult(name, time.Since(started))
		}
	}()

	var responses []string
	for _, prompt := range prompts {
		text, err := g.generateWithRetry(ctx, capability, prompt)
		if err != nil {
			g.logger.Warn("provider task degraded", map[string]interface{}{
				"provider": name,
				"error":    err.Error(),
			})
			metrics.TasksFailed.WithLabelValues(name, errorCodeFor(err)).Inc()
			return degradedProviderResult(name, time.Since(started))
		}
		responses = append(responses, text)
	}

	rawText := strings.Join(responses, "\n")
	latency := time.Since(started)

	detected := g.detector.Detect(rawText, brandName)
	classified := g.classifier.Classify(rawText, brandName)

	snippets := make([]string, 0, len(detected))
	for _, m := range detected {
		if m.Context != "" {
			snippets = append(snippets, m.Context)
		}
	}

	metrics.TasksCompleted.WithLabelValues(name).Inc()
	metrics.TaskDuration.WithLabelValues(name).Observe(latency.Seconds())

	return models.ProviderResult{
		ProviderName:    name,
		RawText:         rawText,
		MentionCount:    len(detected),
		ContextSnippets: snippets,
		Sentiment:       classified,
		VisibilityScore: scoring.VisibilityScore(len(detected), rawText, classified.Overall),
		LatencyMs:       latency.Milliseconds(),
		Succeeded:       true,
	}
}

// generateWithRetry wraps one provider call with a per-attempt timeout and
// bounded exponential backoff.
func (g *Gateway) generateWithRetry(ctx context.Context, capability ProviderCapability, prompt string) (string, error) {
	var lastErr error
	backoff := g.opts.RetryBackoff

	for attempt := 0; attempt <= g.opts.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.opts.TaskTimeout)
		text, err := capability.Generate(attemptCtx, prompt)
		cancel()

		if err == nil {
			return text, nil
		}
		lastErr = err

		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) && !stdErr.Retryable {
			return "", err
		}

		if attempt < g.opts.MaxRetries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return "", lastErr
}

// degradedProviderResult is the zero-signal result a failed task contributes
// to the batch. It is kept in the output, never dropped.
func degradedProviderResult(name string, latency time.Duration) models.ProviderResult {
	return models.ProviderResult{
		ProviderName:    name,
		RawText:         "",
		MentionCount:    0,
		ContextSnippets: []string{},
		Sentiment:       models.NeutralSentiment(),
		VisibilityScore: 0,
		LatencyMs:       latency.Milliseconds(),
		Succeeded:       false,
	}
}

func errorCodeFor(err error) string {
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return string(stderrors.ErrCodeProviderTimeout)
	}
	return string(stderrors.ErrCodeProviderCallFailed)
}
