// cmd/brandsignal/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"brandsignal/internal/artifact"
	"brandsignal/internal/artifact/categorizer"
	"brandsignal/internal/artifact/store"
	"brandsignal/internal/capabilities"
	"brandsignal/internal/common/config"
	"brandsignal/internal/common/database"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/common/observability"
	"brandsignal/internal/models"
	"brandsignal/internal/pipeline"
	"brandsignal/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		brandName   = flag.String("brand", "", "brand name to analyze")
		competitors = flag.String("competitors", "", "comma-separated competitor brands")
		crawl       = flag.Bool("crawl", false, "also crawl configured sources")
		metricsAddr = flag.String("metrics-addr", ":8080", "health/metrics listen address")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if *brandName == "" {
		fmt.Fprintln(os.Stderr, "usage: brandsignal -brand <name> [-competitors a,b] [-crawl]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Datastores. All optional for a single run: a missing store only
	// disables its feature, it never blocks analysis. ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 3, time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Warn("redis unavailable, report caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 3, time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Warn("postgres unavailable, artifact persistence disabled", zap.Error(err))
		pg = nil
	} else {
		defer pg.Close()
	}

	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 3, time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Warn("elasticsearch unavailable, artifact indexing disabled", zap.Error(err))
		esClient = nil
	}

	// --- Capability registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("capability registry load failed", zap.Error(err))
	}
	providers, sources := capabilities.Assemble(reg, cfg, log)

	// --- Pipeline ---
	opts := pipeline.Options{
		MaxConcurrency: cfg.Pipeline.MaxConcurrency,
		TaskTimeout:    config.GetDuration(cfg.Pipeline.TaskTimeout),
		MaxRetries:     cfg.Pipeline.MaxRetries,
		RetryBackoff:   config.GetDuration(cfg.Pipeline.RetryBackoff),
		MinSourceDelay: config.GetDuration(cfg.Pipeline.MinSourceDelay),
	}

	var cache *pipeline.ReportCache
	if redisClient != nil {
		cache = pipeline.NewReportCache(redisClient, config.GetDuration(cfg.Pipeline.CacheTTL), log)
	}

	analyzer := pipeline.NewAnalyzer(
		pipeline.NewGateway(opts, log),
		pipeline.NewCrawler(opts, log),
		cache,
		providers,
		sources,
		log,
	)

	// --- Health & Metrics Server ---
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		mux.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("addr", *metricsAddr))
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Run the analysis ---
	started := time.Now()

	var report *models.AggregateReport
	competitorList := splitList(*competitors)
	if len(competitorList) > 0 {
		report, err = analyzer.CompareBrands(ctx, *brandName, competitorList)
	} else {
		report, err = analyzer.AnalyzeBrand(ctx, *brandName)
	}
	if err != nil {
		obs.RecordBatchProcessed(ctx, "provider", "failed")
		zapLog.Fatal("analysis failed", zap.Error(err))
	}
	obs.RecordBatchProcessed(ctx, "provider", "completed")
	obs.RecordBatchDuration(ctx, time.Since(started), "provider")

	artifacts := []models.Artifact{artifact.NewReportArtifact(report)}

	if *crawl {
		crawlStarted := time.Now()
		crawlReport, err := analyzer.CrawlSources(ctx, *brandName, models.CrawlOptions{
			Timeframe: 7 * 24 * time.Hour,
		})
		if err != nil {
			obs.RecordBatchProcessed(ctx, "source", "failed")
			zapLog.Error("source crawl failed", zap.Error(err))
		} else {
			obs.RecordBatchProcessed(ctx, "source", "completed")
			obs.RecordBatchDuration(ctx, time.Since(crawlStarted), "source")
			report.SourceItems = crawlReport.SourceItems
			crawlArtifact := artifact.NewReportArtifact(crawlReport)
			crawlArtifact.Type = "source-crawl"
			artifacts = append(artifacts, crawlArtifact)
		}
	}

	// --- Categorize and persist ---
	cat := categorizer.New(log)
	categorized := cat.CategorizeMany(artifacts)

	if pg != nil {
		artifactStore := store.NewPostgresStore(pg.DB, log)
		for _, item := range categorized {
			if err := artifactStore.SaveArtifact(ctx, item); err != nil {
				zapLog.Error("artifact save failed", zap.Error(err), zap.String("artifactId", item.ID))
			}
		}
	}
	if esClient != nil {
		indexer := store.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		for _, item := range categorized {
			if err := indexer.IndexArtifact(ctx, item); err != nil {
				zapLog.Error("artifact index failed", zap.Error(err), zap.String("artifactId", item.ID))
			}
		}
	}

	// --- Output ---
	output := map[string]interface{}{
		"report":    report,
		"artifacts": categorized,
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		zapLog.Fatal("output encoding failed", zap.Error(err))
	}

	zapLog.Info("analysis complete",
		zap.String("brand", *brandName),
		zap.Int("providers", len(report.ProviderResults)),
		zap.Int("mentions", report.TotalMentions),
		zap.Duration("elapsed", time.Since(started)),
	)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
