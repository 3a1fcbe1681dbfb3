package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"termex/internal/domain"
	"termex/internal/port"
)

var (
	bucketDocs        = []byte("docs")
	bucketTokens      = []byte("tokens")
	bucketTermVectors = []byte("term_vectors")
	bucketInstances   = []byte("instances")
	bucketCorpus      = []byte("corpus")
	bucketStats       = []byte("stats")
	keyStats          = []byte("corpus_stats")
	keyCorpusVector   = []byte("term_vector")
)

// dataBuckets hold per-document and corpus data; Clear empties them.
var dataBuckets = [][]byte{bucketDocs, bucketTokens, bucketTermVectors, bucketInstances, bucketCorpus}

var _ port.AnalysisStore = (*BoltStore)(nil)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := append([][]byte{bucketStats}, dataBuckets...)
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type docMeta struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
}

func putDocMeta(tx *bbolt.Tx, doc domain.Document) error {
	data, err := json.Marshal(docMeta{
		Path:    doc.Path,
		ModTime: doc.ModTime.Unix(),
	})
	if err != nil {
		return err
	}
	return tx.Bucket(bucketDocs).Put([]byte(doc.ID), data)
}

func decodeDoc(id, data []byte) (domain.Document, error) {
	var meta docMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:      string(id),
		Path:    meta.Path,
		ModTime: time.Unix(meta.ModTime, 0),
	}, nil
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		var err error
		doc, err = decodeDoc([]byte(id), data)
		return err
	})
	return doc, err
}

// DeleteDoc removes a document and everything stored for it.
func (s *BoltStore) DeleteDoc(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketDocs, bucketTokens, bucketTermVectors, bucketInstances} {
			if err := tx.Bucket(name).Delete([]byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			doc, err := decodeDoc(k, v)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

// PutAnalysis stores doc's metadata, tokens, term vector and term instances
// in one transaction.
func (s *BoltStore) PutAnalysis(doc domain.Document) error {
	if doc.Analysis == nil {
		return fmt.Errorf("document %s has not been analyzed", doc.Path)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := putDocMeta(tx, doc); err != nil {
			return err
		}
		key := []byte(doc.ID)
		if err := putJSON(tx.Bucket(bucketTokens), key, doc.Tokens); err != nil {
			return err
		}
		if err := putJSON(tx.Bucket(bucketTermVectors), key, doc.Analysis.TermVector); err != nil {
			return err
		}
		return putJSON(tx.Bucket(bucketInstances), key, doc.Analysis.TermInstances)
	})
}

func (s *BoltStore) GetTokens(docID string) ([]domain.Token, error) {
	var tokens []domain.Token
	err := s.getJSON(bucketTokens, []byte(docID), &tokens)
	return tokens, err
}

func (s *BoltStore) GetTermVector(docID string) (*domain.TermVector, error) {
	tv := domain.NewTermVector()
	if err := s.getJSON(bucketTermVectors, []byte(docID), tv); err != nil {
		return nil, err
	}
	if tv.Counts == nil {
		tv.Counts = make(map[string]int)
	}
	return tv, nil
}

func (s *BoltStore) GetTermInstances(docID string) ([]*domain.TermInstance, error) {
	var instances []*domain.TermInstance
	err := s.getJSON(bucketInstances, []byte(docID), &instances)
	return instances, err
}

func (s *BoltStore) PutCorpusVector(tv *domain.TermVector) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(bucketCorpus), keyCorpusVector, tv)
	})
}

// GetCorpusVector returns the stored corpus vector, or an empty one if none
// has been stored yet.
func (s *BoltStore) GetCorpusVector() (*domain.TermVector, error) {
	tv := domain.NewTermVector()
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCorpus).Get(keyCorpusVector)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, tv)
	})
	if err != nil {
		return nil, err
	}
	if tv.Counts == nil {
		tv.Counts = make(map[string]int)
	}
	return tv, nil
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(bucketStats), keyStats, stats)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func putJSON(b *bbolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}

// getJSON decodes the value at key, failing with ErrDocumentNotFound if absent.
func (s *BoltStore) getJSON(bucket, key []byte, v any) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get(key)
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, key)
		}
		return json.Unmarshal(data, v)
	})
}
