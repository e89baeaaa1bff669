// pkg/registry/schema.go
package registry

// CapabilityRegistry is the declarative inventory of providers and sources
// the pipeline can dispatch to. It is loaded once at startup and treated as
// immutable afterwards; runtime viability is decided per entry from the
// merged configuration, never by mutating the registry.
type CapabilityRegistry struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Providers   []ProviderEntry  `json:"providers"`
	Sources     []SourceEntry    `json:"sources"`
	Defaults    RegistryDefaults `json:"defaults"`
}

// ProviderEntry describes one text-generation provider.
type ProviderEntry struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Model       string   `json:"model"`
	Timeout     string   `json:"timeout"`
	Retries     int      `json:"retries"`
	Tags        []string `json:"tags"`
}

// SourceEntry describes one content source feed.
type SourceEntry struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Weight      float64  `json:"weight"`
	Limit       int      `json:"limit"`
	Tags        []string `json:"tags"`
}

// RegistryDefaults fills entry fields left unset.
type RegistryDefaults struct {
	ProviderTimeout string  `json:"providerTimeout"`
	SourceWeight    float64 `json:"sourceWeight"`
	SourceLimit     int     `json:"sourceLimit"`
}
