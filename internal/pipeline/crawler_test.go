// internal/pipeline/crawler_test.go
package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

// fakeSource is a scriptable source capability for pipeline tests.
type fakeSource struct {
	name   string
	viable bool
	weight float64
	items  []models.RawItem
	err    error
	panics bool
	calls  int32
}

func (s *fakeSource) Name() string    { return s.name }
func (s *fakeSource) Viable() bool    { return s.viable }
func (s *fakeSource) Weight() float64 { return s.weight }

func (s *fakeSource) Fetch(ctx context.Context, brandName string, opts models.CrawlOptions) ([]models.RawItem, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.panics {
		panic("source exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func rawItem(title, content string, engagement int) models.RawItem {
	return models.RawItem{
		URL:         "https://example.com/item",
		Title:       title,
		Content:     content,
		PublishedAt: time.Now().Add(-time.Hour),
		Engagement:  engagement,
	}
}

func TestCrawler_Crawl_ScoresMentioningItems(t *testing.T) {
	c := NewCrawler(testOptions(), logger.NewTestLogger(t))

	sources := []SourceCapability{
		&fakeSource{name: "news", viable: true, weight: 0.9, items: []models.RawItem{
			rawItem("Acme launches excellent new product", "Acme impressed the market with an innovative release.", 150),
		}},
	}

	items := c.Crawl(context.Background(), "Acme", sources, models.CrawlOptions{Limit: 10})
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "news", item.Source)
	assert.NotEmpty(t, item.Mentions)
	assert.Equal(t, models.SentimentPositive, item.Sentiment.Overall)
	assert.Greater(t, item.CredibilityScore, 0.5)
	assert.LessOrEqual(t, item.CredibilityScore, 1.0)
}

func TestCrawler_Crawl_DropsItemsWithoutMentions(t *testing.T) {
	c := NewCrawler(testOptions(), logger.NewTestLogger(t))

	sources := []SourceCapability{
		&fakeSource{name: "reddit", viable: true, weight: 0.7, items: []models.RawItem{
			rawItem("Acme in the headline", "Body also says Acme.", 10),
			rawItem("Unrelated post", "Nothing about the brand here at all.", 500),
		}},
	}

	items := c.Crawl(context.Background(), "Acme", sources, models.CrawlOptions{})
	require.Len(t, items, 1)
	assert.Equal(t, "Acme in the headline", items[0].Title)
}

func TestCrawler_Crawl_SourceFailureIsolation(t *testing.T) {
	c := NewCrawler(testOptions(), logger.NewTestLogger(t))

	sources := []SourceCapability{
		&fakeSource{name: "broken", viable: true, weight: 0.9, err: errors.New("feed unavailable")},
		&fakeSource{name: "healthy", viable: true, weight: 0.6, items: []models.RawItem{
			rawItem("Acme mention", "Acme content.", 5),
		}},
	}

	items := c.Crawl(context.Background(), "Acme", sources, models.CrawlOptions{})
	require.Len(t, items, 1)
	assert.Equal(t, "healthy", items[0].Source)
}

func TestCrawler_Crawl_PanicIsolation(t *testing.T) {
	c := NewCrawler(testOptions(), logger.NewTestLogger(t))

	sources := []SourceCapability{
		&fakeSource{name: "bomb", viable: true, weight: 0.9, panics: true},
		&fakeSource{name: "steady", viable: true, weight: 0.5, items: []models.RawItem{
			rawItem("Acme update", "Acme shipped.", 0),
		}},
	}

	items := c.Crawl(context.Background(), "Acme", sources, models.CrawlOptions{})
	require.Len(t, items, 1)
	assert.Equal(t, "steady", items[0].Source)
}

func TestCrawler_Crawl_SkipsNonViableSources(t *testing.T) {
	c := NewCrawler(testOptions(), logger.NewTestLogger(t))

	unconfigured := &fakeSource{name: "unconfigured", viable: false}
	items := c.Crawl(context.Background(), "Acme", []SourceCapability{unconfigured}, models.CrawlOptions{})

	assert.Empty(t, items)
	assert.Zero(t, atomic.LoadInt32(&unconfigured.calls))
}

func TestCrawler_Crawl_MinSourceDelayHonorsCancellation(t *testing.T) {
	opts := testOptions()
	opts.MinSourceDelay = time.Second
	c := NewCrawler(opts, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{name: "news", viable: true, weight: 0.9, items: []models.RawItem{
		rawItem("Acme", "Acme.", 0),
	}}

	started := time.Now()
	items := c.Crawl(ctx, "Acme", []SourceCapability{source}, models.CrawlOptions{})

	assert.Empty(t, items)
	assert.Less(t, time.Since(started), 500*time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&source.calls))
}

func TestCrawler_Crawl_RetriesTransientFetchErrors(t *testing.T) {
	c := NewCrawler(testOptions(), logger.NewTestLogger(t))

	// Fails every call; attempts = 1 + MaxRetries.
	flaky := &fakeSource{name: "flaky", viable: true, weight: 0.8, err: errors.New("http 503")}
	items := c.Crawl(context.Background(), "Acme", []SourceCapability{flaky}, models.CrawlOptions{})

	assert.Empty(t, items)
	assert.Equal(t, int32(3), atomic.LoadInt32(&flaky.calls))
}
