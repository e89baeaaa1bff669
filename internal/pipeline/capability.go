// internal/pipeline/capability.go
// Package pipeline fans analysis requests out to providers and sources and
// reduces the raw text into aggregate reports.
package pipeline

import (
	"context"

	"brandsignal/internal/models"
)

// ProviderCapability is one independently-configured text-generation
// provider. Implementations live outside the core; the pipeline only sees
// this interface. Capabilities are assembled into an immutable list at
// startup and never mutated afterwards.
type ProviderCapability interface {
	// Name identifies the provider in results and logs.
	Name() string
	// Viable reports whether the provider has a usable configuration.
	// Non-viable capabilities are excluded from the task set before dispatch.
	Viable() bool
	// Generate produces raw text for one prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// SourceCapability is one independently-configured content source.
type SourceCapability interface {
	Name() string
	Viable() bool
	// Weight is the source trust weight used for credibility scoring.
	Weight() float64
	// Fetch returns raw items mentioning the brand, bounded by options.
	Fetch(ctx context.Context, brandName string, opts models.CrawlOptions) ([]models.RawItem, error)
}

// ViableProviders filters a capability list down to dispatchable entries.
func ViableProviders(capabilities []ProviderCapability) []ProviderCapability {
	out := make([]ProviderCapability, 0, len(capabilities))
	for _, c := range capabilities {
		if c != nil && c.Viable() {
			out = append(out, c)
		}
	}
	return out
}

// ViableSources filters a source list down to dispatchable entries.
func ViableSources(sources []SourceCapability) []SourceCapability {
	out := make([]SourceCapability, 0, len(sources))
	for _, s := range sources {
		if s != nil && s.Viable() {
			out = append(out, s)
		}
	}
	return out
}
