package usecase

import (
	"fmt"

	"termex/internal/domain"
	"termex/internal/port"
)

// Aggregator folds per-document term vectors into a corpus-wide vector.
// It only reads completed analyses; it never triggers one.
type Aggregator struct {
	corpus *domain.TermVector
	docs   int
}

func NewAggregator() *Aggregator {
	return &Aggregator{corpus: domain.NewTermVector()}
}

// AddDocument folds in doc's vector. Unanalyzed documents are ignored.
func (a *Aggregator) AddDocument(doc *domain.Document) {
	if doc.Analysis == nil {
		return
	}
	a.AddVector(doc.Analysis.TermVector)
}

func (a *Aggregator) AddVector(tv *domain.TermVector) {
	a.corpus.Add(tv)
	a.docs++
}

// AddFromStore folds in the stored vector of every document in st.
func (a *Aggregator) AddFromStore(st port.AnalysisStore) error {
	docs, err := st.ListDocs()
	if err != nil {
		return fmt.Errorf("failed to list docs: %w", err)
	}
	for _, doc := range docs {
		tv, err := st.GetTermVector(doc.ID)
		if err != nil {
			return fmt.Errorf("failed to load term vector for %s: %w", doc.Path, err)
		}
		a.AddVector(tv)
	}
	return nil
}

func (a *Aggregator) Vector() *domain.TermVector {
	return a.corpus
}

func (a *Aggregator) Documents() int {
	return a.docs
}
