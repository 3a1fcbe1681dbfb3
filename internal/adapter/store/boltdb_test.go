package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"termex/config"
	"termex/internal/domain"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func analyzedDoc(id string) domain.Document {
	tokens := []domain.Token{
		{Text: "New", Span: domain.Span{Start: 0, End: 3}, POS: "NNP", NER: "LOCATION"},
		{Text: "York", Span: domain.Span{Start: 4, End: 8}, POS: "NNP", NER: "LOCATION"},
	}
	a := domain.NewAnalysis()
	for _, ti := range []*domain.TermInstance{
		domain.NewTermInstance(tokens, 0, 0),
		domain.NewTermInstance(tokens, 0, 1),
		domain.NewTermInstance(tokens, 1, 1),
	} {
		a.TermVector.Increment(ti.TermName)
		a.TermInstances = append(a.TermInstances, ti)
	}
	return domain.Document{
		ID:       id,
		Path:     "/corpus/" + id + ".tag",
		ModTime:  time.Unix(1700000000, 0),
		Tokens:   tokens,
		Analysis: a,
	}
}

func TestBoltStore_PutAnalysis(t *testing.T) {
	st := openTestStore(t)
	doc := analyzedDoc("d1")

	if err := st.PutAnalysis(doc); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetDoc("d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != doc.Path || !got.ModTime.Equal(doc.ModTime) {
		t.Errorf("unexpected doc %+v", got)
	}

	tokens, err := st.GetTokens("d1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tokens, doc.Tokens) {
		t.Errorf("tokens = %+v, want %+v", tokens, doc.Tokens)
	}

	tv, err := st.GetTermVector("d1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tv, doc.Analysis.TermVector) {
		t.Errorf("term vector = %+v, want %+v", tv, doc.Analysis.TermVector)
	}

	instances, err := st.GetTermInstances("d1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(instances, doc.Analysis.TermInstances) {
		t.Errorf("instances = %+v, want %+v", instances, doc.Analysis.TermInstances)
	}
}

func TestBoltStore_PutAnalysisRequiresAnalysis(t *testing.T) {
	st := openTestStore(t)
	doc := analyzedDoc("d1")
	doc.Analysis = nil
	if err := st.PutAnalysis(doc); err == nil {
		t.Error("expected error for unanalyzed document")
	}
}

func TestBoltStore_DeleteDoc(t *testing.T) {
	st := openTestStore(t)
	if err := st.PutAnalysis(analyzedDoc("d1")); err != nil {
		t.Fatal(err)
	}
	if err := st.PutAnalysis(analyzedDoc("d2")); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteDoc("d1"); err != nil {
		t.Fatal(err)
	}

	if _, err := st.GetDoc("d1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
	if _, err := st.GetTokens("d1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected tokens to be deleted, got %v", err)
	}
	docs, err := st.ListDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].ID != "d2" {
		t.Errorf("unexpected remaining docs %+v", docs)
	}
}

func TestBoltStore_CorpusVectorAndStats(t *testing.T) {
	st := openTestStore(t)

	empty, err := st.GetCorpusVector()
	if err != nil {
		t.Fatal(err)
	}
	if empty.TotalCount != 0 || empty.Counts == nil {
		t.Errorf("expected empty corpus vector, got %+v", empty)
	}

	tv := domain.NewTermVector()
	tv.Increment("fox")
	tv.Increment("fox")
	if err := st.PutCorpusVector(tv); err != nil {
		t.Fatal(err)
	}
	got, err := st.GetCorpusVector()
	if err != nil {
		t.Fatal(err)
	}
	if got.Count("fox") != 2 || got.TotalCount != 2 {
		t.Errorf("unexpected corpus vector %+v", got)
	}

	stats := domain.Stats{TotalDocs: 3, TotalTokens: 30, TotalInstances: 45, DistinctTerms: 12}
	if err := st.UpdateStats(stats); err != nil {
		t.Fatal(err)
	}
	gotStats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if gotStats != stats {
		t.Errorf("stats = %+v, want %+v", gotStats, stats)
	}
}

func TestBoltStore_MigrationAndClear(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()

	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("fresh store should need migration only: %+v", result)
	}
	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	result, err = st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("migrated store should be current: %+v", result)
	}

	changed := config.DefaultConfig()
	changed.Analysis.Analyzer = "ngram"
	changed.Analysis.Order = 2
	rebuild, reason, err := st.NeedsRebuild(changed)
	if err != nil {
		t.Fatal(err)
	}
	if !rebuild || reason == "" {
		t.Errorf("changed analyzer should force a rebuild, got %v %q", rebuild, reason)
	}

	if err := st.PutAnalysis(analyzedDoc("d1")); err != nil {
		t.Fatal(err)
	}
	if err := st.UpdateStats(domain.Stats{TotalDocs: 1}); err != nil {
		t.Fatal(err)
	}
	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	docs, _ := st.ListDocs()
	if len(docs) != 0 {
		t.Errorf("expected no docs after Clear, got %d", len(docs))
	}
	stats, _ := st.GetStats()
	if stats.TotalDocs != 0 {
		t.Errorf("expected stats reset after Clear, got %+v", stats)
	}
	info, _ := st.GetSchemaInfo()
	if info.Version != CurrentSchemaVersion {
		t.Errorf("Clear must keep the schema version, got %d", info.Version)
	}
}

func TestComputeConfigHash_UnigramIgnoresNgramSettings(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	b.Analysis.Order = 5
	b.Analysis.StopwordFilter = true
	if ComputeConfigHash(a) != ComputeConfigHash(b) {
		t.Error("unigram hash should not depend on n-gram settings")
	}

	b.Analysis.Analyzer = "ngram"
	if ComputeConfigHash(a) == ComputeConfigHash(b) {
		t.Error("switching analyzers should change the hash")
	}
}

func TestBoltStore_PrepareRecordsHashBeforeWrites(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()
	if _, err := st.Prepare(cfg); err != nil {
		t.Fatal(err)
	}
	if err := st.PutAnalysis(analyzedDoc("d1")); err != nil {
		t.Fatal(err)
	}

	changed := config.DefaultConfig()
	changed.Analysis.Analyzer = "ngram"
	changed.Analysis.Order = 2
	result, err := st.Prepare(changed)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Fatalf("expected a rebuild, got %+v", result)
	}
	if docs, _ := st.ListDocs(); len(docs) != 0 {
		t.Errorf("expected docs cleared, got %d", len(docs))
	}
	// the new hash is recorded even if nothing is analyzed afterwards
	info, _ := st.GetSchemaInfo()
	if info.ConfigHash != ComputeConfigHash(changed) {
		t.Errorf("config hash not updated by Prepare")
	}

	if err := st.PutAnalysis(analyzedDoc("d2")); err != nil {
		t.Fatal(err)
	}
	result, err = st.Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Errorf("switching back should rebuild, got %+v", result)
	}
	if docs, _ := st.ListDocs(); len(docs) != 0 {
		t.Errorf("expected docs cleared, got %d", len(docs))
	}
}
