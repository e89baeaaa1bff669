// internal/capabilities/assemble.go
package capabilities

import (
	"brandsignal/internal/common/config"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/pipeline"
	"brandsignal/pkg/registry"
)

// Assemble builds the immutable capability lists the pipeline dispatches to.
// Every registry entry becomes a capability; entries without matching
// configuration stay in the list as non-viable so their absence is visible in
// logs rather than silent.
func Assemble(reg *registry.CapabilityRegistry, cfg *config.Config, log logger.Logger) ([]pipeline.ProviderCapability, []pipeline.SourceCapability) {
	providers := make([]pipeline.ProviderCapability, 0, len(reg.Providers))
	for _, entry := range reg.Providers {
		providerCfg := cfg.Providers[entry.Name]
		if providerCfg.Model == "" {
			providerCfg.Model = entry.Model
		}
		capability := NewHTTPProvider(entry.Name, providerCfg, log)
		if !capability.Viable() {
			log.Warn("provider not viable, will be skipped", map[string]interface{}{
				"provider": entry.Name,
			})
		}
		providers = append(providers, capability)
	}

	sources := make([]pipeline.SourceCapability, 0, len(reg.Sources))
	for _, entry := range reg.Sources {
		sourceCfg := cfg.Sources[entry.Name]
		if sourceCfg.Weight == 0 {
			sourceCfg.Weight = entry.Weight
		}
		if sourceCfg.Limit == 0 {
			sourceCfg.Limit = entry.Limit
		}
		capability := NewHTTPSource(entry.Name, sourceCfg, log)
		if !capability.Viable() {
			log.Warn("source not viable, will be skipped", map[string]interface{}{
				"source": entry.Name,
			})
		}
		sources = append(sources, capability)
	}

	return providers, sources
}
