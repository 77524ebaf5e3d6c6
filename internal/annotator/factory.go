package annotator

import (
	"fmt"
	"sync"

	"paynlp/internal/config"
	"paynlp/internal/port"
)

// ProviderFactory creates an Annotator from a provider config.
type ProviderFactory func(cfg *config.AnnotatorProviderConfig) (port.Annotator, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers an annotator provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// NewAnnotator creates an Annotator from a provider config using the registered factory.
func NewAnnotator(cfg *config.AnnotatorProviderConfig) (port.Annotator, error) {
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown annotator provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
