package provider

import (
	"fmt"

	"reqlens/internal/config"
	"reqlens/internal/port"
)

// Factory is a function that creates an AnalysisProvider from a provider config.
type Factory func(cfg *config.AnalyzerProviderConfig) (port.AnalysisProvider, error)

// registry of provider factories, populated explicitly via Register at wiring time.
var factories = map[string]Factory{}

// Register registers a provider factory by name.
func Register(name string, factory Factory) {
	factories[name] = factory
}

// New creates an AnalysisProvider from a provider config using the registered factory.
func New(cfg *config.AnalyzerProviderConfig) (port.AnalysisProvider, error) {
	factory, ok := factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown analysis provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
