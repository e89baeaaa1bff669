// internal/capabilities/source.go
package capabilities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"brandsignal/internal/analysis/scoring"
	"brandsignal/internal/common/config"
	"brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/common/validation"
	"brandsignal/internal/models"
)

// HTTPSource fetches brand content from a search-feed API over HTTP.
type HTTPSource struct {
	name   string
	config config.SourceConfig
	client *http.Client
	logger logger.Logger
}

func NewHTTPSource(name string, cfg config.SourceConfig, log logger.Logger) *HTTPSource {
	return &HTTPSource{
		name:   name,
		config: cfg,
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{
			"source": name,
		}),
	}
}

func (s *HTTPSource) Name() string { return s.name }

func (s *HTTPSource) Viable() bool {
	return s.config.Enabled && s.config.BaseURL != "" && s.config.APIKey != ""
}

// Weight is the configured trust weight, falling back to the built-in
// per-source table when unset.
func (s *HTTPSource) Weight() float64 {
	if s.config.Weight > 0 {
		return s.config.Weight
	}
	return scoring.SourceWeight(s.name)
}

type feedItem struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at"`
	Engagement  int    `json:"engagement"`
}

// Fetch queries the feed for items mentioning the brand. Items that fail
// schema validation are skipped with a warning rather than failing the fetch.
func (s *HTTPSource) Fetch(ctx context.Context, brandName string, opts models.CrawlOptions) ([]models.RawItem, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.config.Limit
	}

	query := url.Values{}
	query.Set("q", brandName)
	query.Set("limit", strconv.Itoa(limit))
	if opts.Timeframe > 0 {
		query.Set("since", time.Now().UTC().Add(-opts.Timeframe).Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL+"/api/search?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.NewSourceFetchFailedError(s.name, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSourceTimeoutError(s.name)
		}
		return nil, errors.NewSourceFetchFailedError(s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewSourceFetchFailedError(s.name, fmt.Errorf("status %d", resp.StatusCode))
	}

	var apiResponse struct {
		Items []feedItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewSourceFetchFailedError(s.name, err)
	}

	items := make([]models.RawItem, 0, len(apiResponse.Items))
	for _, item := range apiResponse.Items {
		if err := validation.ValidateSourceItem(map[string]interface{}{
			"url":     item.URL,
			"title":   item.Title,
			"content": item.Content,
		}); err != nil {
			s.logger.Warn("skipping malformed feed item", map[string]interface{}{
				"url":   item.URL,
				"error": err.Error(),
			})
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		items = append(items, models.RawItem{
			URL:         item.URL,
			Title:       item.Title,
			Content:     item.Content,
			PublishedAt: publishedAt,
			Engagement:  item.Engagement,
		})
	}

	return items, nil
}
