// internal/capabilities/source_test.go
package capabilities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandsignal/internal/common/config"
	"brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

func sourceConfig(baseURL string) config.SourceConfig {
	return config.SourceConfig{
		Enabled: true,
		BaseURL: baseURL,
		APIKey:  "test-key",
		Weight:  0.8,
		Limit:   20,
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "Tesla", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"url":          "https://news.example.com/tesla",
					"title":        "Tesla expands production",
					"content":      "Tesla announced a new factory this week.",
					"published_at": time.Now().UTC().Format(time.RFC3339),
					"engagement":   120,
				},
				{
					// No content; must be skipped, not fail the fetch.
					"url":   "https://news.example.com/empty",
					"title": "Empty item",
				},
			},
		})
	}))
	defer server.Close()

	s := NewHTTPSource("news", sourceConfig(server.URL), logger.NewTestLogger(t))
	require.True(t, s.Viable())

	items, err := s.Fetch(context.Background(), "Tesla", models.CrawlOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tesla expands production", items[0].Title)
	assert.Equal(t, 120, items[0].Engagement)
	assert.False(t, items[0].PublishedAt.IsZero())
}

func TestHTTPSource_Fetch_TimeframeSetsSinceParam(t *testing.T) {
	var since string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		since = r.URL.Query().Get("since")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []map[string]interface{}{}})
	}))
	defer server.Close()

	s := NewHTTPSource("news", sourceConfig(server.URL), logger.NewTestLogger(t))
	_, err := s.Fetch(context.Background(), "Tesla", models.CrawlOptions{Timeframe: 24 * time.Hour})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, since)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), parsed, time.Minute)
}

func TestHTTPSource_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := NewHTTPSource("news", sourceConfig(server.URL), logger.NewTestLogger(t))
	_, err := s.Fetch(context.Background(), "Tesla", models.CrawlOptions{})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeSourceFetchFailed, stdErr.Code)
}

func TestHTTPSource_Fetch_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	s := NewHTTPSource("news", sourceConfig(server.URL), logger.NewTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := s.Fetch(ctx, "Tesla", models.CrawlOptions{})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeSourceTimeout, stdErr.Code)
}

func TestHTTPSource_Weight(t *testing.T) {
	configured := NewHTTPSource("custom", config.SourceConfig{Weight: 0.95}, logger.NewNoOpLogger())
	assert.Equal(t, 0.95, configured.Weight())

	// Unset weight falls back to the built-in table.
	news := NewHTTPSource("news", config.SourceConfig{}, logger.NewNoOpLogger())
	assert.Equal(t, 0.9, news.Weight())

	unknown := NewHTTPSource("mystery-feed", config.SourceConfig{}, logger.NewNoOpLogger())
	assert.Equal(t, 0.5, unknown.Weight())
}
