// internal/analysis/mentions/detector.go
// Package mentions finds brand occurrences in free text.
package mentions

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"brandsignal/internal/models"
)

const (
	contextWindow = 100

	// Ceiling for fuzzy variant confidence; only an exact match scores 1.0.
	maxFuzzyConfidence = 0.95
)

// Detector locates exact and fuzzy brand mentions. It holds no mutable state
// and is safe for concurrent use.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns all brand mentions in text, deduplicated by (text, position)
// and sorted by position ascending. No match means an empty slice, never an
// error.
func (d *Detector) Detect(text, brandName string) []models.Mention {
	results := []models.Mention{}
	brand := strings.TrimSpace(brandName)
	if text == "" || brand == "" {
		return results
	}

	type key struct {
		text string
		pos  int
	}
	seen := map[key]bool{}

	add := func(m models.Mention) {
		k := key{text: m.Text, pos: m.Position}
		if seen[k] {
			return
		}
		seen[k] = true
		results = append(results, m)
	}

	// Exact pass first so the exact entry wins a (text, position) collision
	// with a fuzzy variant.
	if re, err := boundaryPattern(brand); err == nil {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			add(models.Mention{
				Text:       text[loc[0]:loc[1]],
				Position:   loc[0],
				Kind:       models.MentionExact,
				Confidence: 1.0,
				Context:    contextAround(text, loc[0], loc[1]),
			})
		}
	}

	for _, variant := range generateVariants(brand) {
		if strings.EqualFold(variant, brand) {
			continue
		}
		re, err := boundaryPattern(variant)
		if err != nil {
			continue
		}
		confidence := variantConfidence(variant, brand)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			add(models.Mention{
				Text:       text[loc[0]:loc[1]],
				Position:   loc[0],
				Kind:       models.MentionFuzzy,
				Confidence: confidence,
				Context:    contextAround(text, loc[0], loc[1]),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Position != results[j].Position {
			return results[i].Position < results[j].Position
		}
		return results[i].Text < results[j].Text
	})

	return results
}

// boundaryPattern compiles a case-insensitive word-boundary pattern for the
// literal term.
func boundaryPattern(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// variantConfidence compares the variant against the original brand spelling.
// Exact is always 1.0; fuzzy confidence stays in [0.5, 1.0) so a same-length
// variant (dot swapped for a space, say) never passes for an exact match.
func variantConfidence(variant, brand string) float64 {
	lv, lb := len(variant), len(brand)
	if lv == 0 || lb == 0 {
		return 0.5
	}
	shorter, longer := lv, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	c := float64(shorter) / float64(longer)
	if c < 0.5 {
		return 0.5
	}
	if c >= maxFuzzyConfidence {
		return maxFuzzyConfidence
	}
	return c
}

// generateVariants produces the fuzzy spellings that still plausibly refer to
// the brand. Duplicates are filtered by the caller's (text, position) dedup.
func generateVariants(brand string) []string {
	set := map[string]bool{}
	push := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = true
		}
	}

	push(strings.ToLower(brand))
	push(strings.ToUpper(brand))
	push(titleCase(brand))

	if strings.Contains(brand, " ") {
		push(titleCase(brand))
		push(strings.ToUpper(brand))
		joined := strings.ReplaceAll(brand, " ", "")
		push(strings.ToLower(joined))
		push(strings.ToUpper(joined))
	}

	if strings.Contains(brand, "&") {
		push(strings.ReplaceAll(brand, "&", "and"))
		push(strings.ReplaceAll(brand, "&", "AND"))
	}

	if strings.Contains(brand, ".") {
		push(strings.ReplaceAll(brand, ".", ""))
		push(strings.ReplaceAll(brand, ".", " "))
	}

	variants := make([]string, 0, len(set))
	for v := range set {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}

// titleCase capitalizes the first rune of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// contextAround extracts a window of roughly contextWindow characters centered
// on the match, expanded outward to the nearest word boundary on each side.
func contextAround(text string, matchStart, matchEnd int) string {
	center := (matchStart + matchEnd) / 2
	start := center - contextWindow/2
	if start < 0 {
		start = 0
	}
	end := start + contextWindow
	if end > len(text) {
		end = len(text)
	}

	for start > 0 && !isSpace(text[start-1]) {
		start--
	}
	for end < len(text) && !isSpace(text[end]) {
		end++
	}

	return strings.TrimSpace(text[start:end])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
