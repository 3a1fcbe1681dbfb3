package port

import "termex/internal/domain"

// DocAnalyzer extracts term instances from a document's tokens.
type DocAnalyzer interface {
	// Analyze returns instances ordered by start token, then by length.
	Analyze(tokens []domain.Token) ([]*domain.TermInstance, error)

	// Name identifies the analyzer and its settings, e.g. "ngram(order=3)".
	Name() string
}
