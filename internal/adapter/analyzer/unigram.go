package analyzer

import (
	"termex/internal/domain"
)

// UnigramAnalyzer emits one term instance per token, without filtering.
type UnigramAnalyzer struct{}

func NewUnigramAnalyzer() *UnigramAnalyzer {
	return &UnigramAnalyzer{}
}

func (a *UnigramAnalyzer) Analyze(tokens []domain.Token) ([]*domain.TermInstance, error) {
	out := make([]*domain.TermInstance, 0, len(tokens))
	for i := range tokens {
		out = append(out, domain.NewTermInstance(tokens, i, i))
	}
	return out, nil
}

func (a *UnigramAnalyzer) Name() string {
	return "unigram"
}
