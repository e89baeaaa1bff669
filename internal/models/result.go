// internal/models/result.go
package models

import "time"

// ProviderResult is the outcome of one provider query. It is created once per
// provider per batch and is immutable after creation. Failed tasks still
// produce a result with Succeeded=false and zero signal.
type ProviderResult struct {
	ProviderName    string          `json:"providerName"`
	RawText         string          `json:"rawText"`
	MentionCount    int             `json:"mentionCount"`
	ContextSnippets []string        `json:"contextSnippets"`
	Sentiment       SentimentResult `json:"sentiment"`
	VisibilityScore int             `json:"visibilityScore"`
	LatencyMs       int64           `json:"latencyMs"`
	Succeeded       bool            `json:"succeeded"`
}

// RawItem is an unscored piece of content returned by a source capability.
type RawItem struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
	Engagement  int       `json:"engagement"`
}

// SourceItem is a crawled item in which at least one brand mention was
// detected. Items with zero mentions never become SourceItems.
type SourceItem struct {
	Source           string          `json:"source"`
	URL              string          `json:"url"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	Mentions         []Mention       `json:"mentions"`
	Sentiment        SentimentResult `json:"sentiment"`
	PublishedAt      time.Time       `json:"publishedAt"`
	CredibilityScore float64         `json:"credibilityScore"`
}

// CrawlOptions bounds a source crawl.
type CrawlOptions struct {
	Limit     int           `json:"limit"`
	Timeframe time.Duration `json:"timeframe"`
}
