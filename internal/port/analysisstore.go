package port

import "termex/internal/domain"

// AnalysisStore persists documents, their tokens and analysis results.
type AnalysisStore interface {
	GetDoc(id string) (domain.Document, error)

	DeleteDoc(id string) error

	ListDocs() ([]domain.Document, error)

	// PutAnalysis stores a document together with its tokens, term vector
	// and term instances. The position indexes are not stored; they are
	// rebuilt from the instances.
	PutAnalysis(doc domain.Document) error

	GetTokens(docID string) ([]domain.Token, error)

	GetTermVector(docID string) (*domain.TermVector, error)

	GetTermInstances(docID string) ([]*domain.TermInstance, error)

	PutCorpusVector(tv *domain.TermVector) error

	GetCorpusVector() (*domain.TermVector, error)

	GetStats() (domain.Stats, error)

	UpdateStats(stats domain.Stats) error

	Close() error
}
