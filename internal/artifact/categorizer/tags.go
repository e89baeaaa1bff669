// internal/artifact/categorizer/tags.go
package categorizer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"brandsignal/internal/models"
)

const maxTagLength = 50

var (
	tagStripPattern    = regexp.MustCompile(`[^a-z0-9 -]`)
	tagSpacePattern    = regexp.MustCompile(`\s+`)
	tagCollapsePattern = regexp.MustCompile(`-{2,}`)
)

// typeTagTable adds fixed descriptive tags per artifact type.
var typeTagTable = map[string][]string{
	"visibility-matrix":        {"visibility", "brand-analysis"},
	"competitive-intelligence": {"competitive", "market-research"},
	"content-optimization":     {"content", "seo"},
	"brand-monitor-report":     {"monitoring", "brand-health"},
	"sentiment-report":         {"sentiment", "perception"},
	"share-of-voice-report":    {"share-of-voice", "market-position"},
	"source-crawl":             {"crawl", "monitoring"},
}

// scoreBucketFields maps content score fields to their tag prefix. Scores are
// bucketed at 80/60/40 into high/medium/low/very-low.
var scoreBucketFields = []struct {
	field  string
	prefix string
}{
	{"credibilityScore", "credibility"},
	{"performanceScore", "performance"},
	{"visibilityScore", "visibility"},
	{"overallVisibility", "visibility"},
}

// stringListFields are content fields whose string values (scalar or list)
// become tags directly.
var stringListFields = []string{
	"brandName",
	"competitors",
	"platform",
	"targetKeywords",
	"industry",
	"contentType",
}

// extractTags unions every tag source, normalizes each entry, and returns a
// sorted set. Calling it twice on the same artifact yields the same slice.
func extractTags(artifact models.Artifact, now time.Time) []string {
	set := make(map[string]bool)

	add := func(raw string) {
		if tag := NormalizeTag(raw); tag != "" {
			set[tag] = true
		}
	}

	for _, tag := range artifact.Metadata.Tags {
		add(tag)
	}

	for _, field := range stringListFields {
		for _, value := range contentStrings(artifact.Content, field) {
			add(value)
		}
	}

	for _, bucket := range scoreBucketFields {
		if score, ok := contentNumber(artifact.Content, bucket.field); ok {
			add(bucket.prefix + "-" + scoreBucket(score))
		}
	}

	add(artifact.Type)
	for _, tag := range typeTagTable[strings.ToLower(strings.TrimSpace(artifact.Type))] {
		add(tag)
	}

	if !artifact.Metadata.Timestamp.IsZero() {
		add(recencyTag(now.Sub(artifact.Metadata.Timestamp)))
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// NormalizeTag canonicalizes one raw tag: lower-cased, trimmed, characters
// outside [a-z0-9 -] stripped, whitespace runs to single hyphens, hyphen runs
// collapsed, leading/trailing hyphens removed, at most 50 chars.
func NormalizeTag(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	tag = tagStripPattern.ReplaceAllString(tag, "")
	tag = tagSpacePattern.ReplaceAllString(tag, "-")
	tag = tagCollapsePattern.ReplaceAllString(tag, "-")
	tag = strings.Trim(tag, "-")
	if len(tag) > maxTagLength {
		tag = strings.Trim(tag[:maxTagLength], "-")
	}
	return tag
}

func scoreBucket(score float64) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "medium"
	case score >= 40:
		return "low"
	default:
		return "very-low"
	}
}

func recencyTag(age time.Duration) string {
	switch {
	case age < 24*time.Hour:
		return "recent-today"
	case age < 168*time.Hour:
		return "recent-this-week"
	case age < 720*time.Hour:
		return "recent-this-month"
	default:
		return "older-historical"
	}
}

// contentStrings reads a scalar string or a string list from content.
func contentStrings(content models.ArtifactContent, field string) []string {
	value, ok := content[field]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// contentNumber reads a numeric content field regardless of how JSON
// decoding typed it.
func contentNumber(content models.ArtifactContent, field string) (float64, bool) {
	value, ok := content[field]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
