package memstore

import (
	"fmt"
	"sort"
	"sync"

	"termex/internal/domain"
	"termex/internal/port"
)

var _ port.AnalysisStore = (*MemoryStore)(nil)

type MemoryStore struct {
	mu        sync.RWMutex
	docs      map[string]domain.Document
	tokens    map[string][]domain.Token
	vectors   map[string]*domain.TermVector
	instances map[string][]*domain.TermInstance
	corpus    *domain.TermVector
	stats     domain.Stats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:      make(map[string]domain.Document),
		tokens:    make(map[string][]domain.Token),
		vectors:   make(map[string]*domain.TermVector),
		instances: make(map[string][]*domain.TermInstance),
		corpus:    domain.NewTermVector(),
	}
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return doc, nil
}

func (s *MemoryStore) DeleteDoc(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	delete(s.tokens, id)
	delete(s.vectors, id)
	delete(s.instances, id)
	return nil
}

// ListDocs returns documents ordered by ID.
func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) PutAnalysis(doc domain.Document) error {
	if doc.Analysis == nil {
		return fmt.Errorf("document %s has not been analyzed", doc.Path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = metaOnly(doc)
	s.tokens[doc.ID] = doc.Tokens
	s.vectors[doc.ID] = doc.Analysis.TermVector
	s.instances[doc.ID] = doc.Analysis.TermInstances
	return nil
}

func (s *MemoryStore) GetTokens(docID string) ([]domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tokens, ok := s.tokens[docID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, docID)
	}
	return tokens, nil
}

func (s *MemoryStore) GetTermVector(docID string) (*domain.TermVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tv, ok := s.vectors[docID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, docID)
	}
	return tv, nil
}

func (s *MemoryStore) GetTermInstances(docID string) ([]*domain.TermInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	instances, ok := s.instances[docID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, docID)
	}
	return instances, nil
}

func (s *MemoryStore) PutCorpusVector(tv *domain.TermVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = tv
	return nil
}

func (s *MemoryStore) GetCorpusVector() (*domain.TermVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus, nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *MemoryStore) UpdateStats(stats domain.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func metaOnly(doc domain.Document) domain.Document {
	return domain.Document{
		ID:      doc.ID,
		Path:    doc.Path,
		ModTime: doc.ModTime,
	}
}
