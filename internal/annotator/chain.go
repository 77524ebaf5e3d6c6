package annotator

import (
	"fmt"

	"go.uber.org/zap"

	"paynlp/internal/config"
	"paynlp/internal/port"
)

// NewChain builds the configured annotation backend: the primary provider,
// falling back to the secondary when one is configured, behind a cache when
// CacheTTL is positive. Providers must already be registered.
func NewChain(cfg *config.AnnotatorConfig, logger *zap.Logger) (port.Annotator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	primary, err := NewAnnotator(cfg.PrimaryConfig())
	if err != nil {
		return nil, fmt.Errorf("creating primary annotator: %w", err)
	}

	var chain port.Annotator = primary
	if secondaryCfg := cfg.SecondaryConfig(); secondaryCfg != nil {
		secondary, err := NewAnnotator(secondaryCfg)
		if err != nil {
			return nil, fmt.Errorf("creating secondary annotator: %w", err)
		}
		chain = NewFallbackAnnotator([]port.Annotator{primary, secondary}, logger)
	}

	if cfg.CacheTTL > 0 {
		chain = NewCachedAnnotator(chain, cfg.CacheTTL)
	}

	logger.Info("annotator chain ready", zap.String("annotator", chain.Name()))
	return chain, nil
}
