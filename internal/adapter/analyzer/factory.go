package analyzer

import (
	"fmt"

	"termex/config"
	"termex/internal/domain"
	"termex/internal/port"
)

// NewAnalyzer builds the extraction policy described by cfg.
func NewAnalyzer(cfg config.AnalysisConfig) (port.DocAnalyzer, error) {
	switch cfg.Analyzer {
	case "unigram", "":
		return NewUnigramAnalyzer(), nil
	case "ngram":
		if cfg.Order < 1 {
			return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidOrder, cfg.Order)
		}
		return NewNgramAnalyzer(cfg.Order, cfg.POSNERFilter, cfg.StopwordFilter), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAnalyzer, cfg.Analyzer)
	}
}
