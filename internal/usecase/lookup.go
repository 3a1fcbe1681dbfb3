package usecase

import (
	"fmt"

	"termex/internal/domain"
	"termex/internal/port"
)

// LookupUseCase answers position queries against stored analyses. The
// position indexes are not persisted, so each document is rebuilt from its
// stored tokens and term instances on load.
type LookupUseCase struct {
	store port.AnalysisStore
}

func NewLookupUseCase(store port.AnalysisStore) *LookupUseCase {
	return &LookupUseCase{store: store}
}

// TokenLookup lists the instances that start at or cover a token.
type TokenLookup struct {
	Token      domain.Token           `json:"token"`
	StartingAt []*domain.TermInstance `json:"starting_at"`
	Covering   []*domain.TermInstance `json:"covering"`
}

// CharLookup lists the instances whose span starts or ends at a byte offset.
// TokenIndex is the token containing the offset, or -1 between tokens.
type CharLookup struct {
	Offset     int                    `json:"offset"`
	TokenIndex int                    `json:"token_index"`
	StartingAt []*domain.TermInstance `json:"starting_at"`
	EndingAt   []*domain.TermInstance `json:"ending_at"`
}

// Load returns the document stored for path with its analysis rebuilt.
func (u *LookupUseCase) Load(path string) (*domain.Document, error) {
	doc, err := u.store.GetDoc(generateDocID(path))
	if err != nil {
		return nil, err
	}
	tokens, err := u.store.GetTokens(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens for %s: %w", path, err)
	}
	instances, err := u.store.GetTermInstances(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load term instances for %s: %w", path, err)
	}
	for _, ti := range instances {
		if ti.Len() == 0 {
			return nil, fmt.Errorf("stored instance %q of %s has no tokens", ti.TermName, path)
		}
		if ti.First() < 0 || ti.Last() >= len(tokens) {
			return nil, fmt.Errorf("stored instance %q of %s references tokens %d-%d of %d",
				ti.TermName, path, ti.First(), ti.Last(), len(tokens))
		}
	}

	doc.Tokens = tokens
	doc.Analysis = BuildAnalysis(tokens, instances)
	return &doc, nil
}

// ByToken resolves a token index of an analyzed document.
func (u *LookupUseCase) ByToken(doc *domain.Document, tokIndex int) (*TokenLookup, error) {
	if tokIndex < 0 || tokIndex >= len(doc.Tokens) {
		return nil, fmt.Errorf("token index %d out of range [0,%d)", tokIndex, len(doc.Tokens))
	}
	return &TokenLookup{
		Token:      doc.Tokens[tokIndex],
		StartingAt: doc.Analysis.StartingAtToken(tokIndex),
		Covering:   doc.Analysis.CoveringToken(tokIndex),
	}, nil
}

// ByChar resolves a byte offset of an analyzed document. Offsets that fall
// between or inside tokens simply yield no instances.
func (u *LookupUseCase) ByChar(doc *domain.Document, offset int) *CharLookup {
	tokIndex := -1
	for i, tok := range doc.Tokens {
		if tok.Contains(offset) {
			tokIndex = i
			break
		}
	}
	return &CharLookup{
		Offset:     offset,
		TokenIndex: tokIndex,
		StartingAt: doc.Analysis.StartingAtChar(offset),
		EndingAt:   doc.Analysis.EndingAtChar(offset),
	}
}
