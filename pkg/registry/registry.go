// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadRegistry reads and validates the capability registry file.
func LoadRegistry(path string) (*CapabilityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reg CapabilityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if err := reg.validate(); err != nil {
		return nil, err
	}

	reg.applyDefaults()
	return &reg, nil
}

func (r *CapabilityRegistry) validate() error {
	seen := make(map[string]bool)
	for _, p := range r.Providers {
		if p.Name == "" {
			return fmt.Errorf("registry: provider entry with empty name")
		}
		if seen["p:"+p.Name] {
			return fmt.Errorf("registry: duplicate provider %q", p.Name)
		}
		seen["p:"+p.Name] = true
	}
	for _, s := range r.Sources {
		if s.Name == "" {
			return fmt.Errorf("registry: source entry with empty name")
		}
		if seen["s:"+s.Name] {
			return fmt.Errorf("registry: duplicate source %q", s.Name)
		}
		seen["s:"+s.Name] = true
	}
	return nil
}

func (r *CapabilityRegistry) applyDefaults() {
	for i := range r.Providers {
		if r.Providers[i].Timeout == "" {
			r.Providers[i].Timeout = r.Defaults.ProviderTimeout
		}
	}
	for i := range r.Sources {
		if r.Sources[i].Weight == 0 {
			r.Sources[i].Weight = r.Defaults.SourceWeight
		}
		if r.Sources[i].Limit == 0 {
			r.Sources[i].Limit = r.Defaults.SourceLimit
		}
	}
}

// Provider returns the entry with the given name, or nil.
func (r *CapabilityRegistry) Provider(name string) *ProviderEntry {
	for i := range r.Providers {
		if r.Providers[i].Name == name {
			return &r.Providers[i]
		}
	}
	return nil
}

// Source returns the entry with the given name, or nil.
func (r *CapabilityRegistry) Source(name string) *SourceEntry {
	for i := range r.Sources {
		if r.Sources[i].Name == name {
			return &r.Sources[i]
		}
	}
	return nil
}
