package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"termex/internal/adapter/fs"
	"termex/internal/domain"
	"termex/internal/logger"
	"termex/internal/port"
)

// IndexUseCase analyzes every document of a directory and stores the results.
type IndexUseCase struct {
	store     port.AnalysisStore
	walker    port.FileWalker
	tokenizer port.Tokenizer
	analyze   *AnalyzeUseCase
	workers   int
	log       *slog.Logger
}

// NewIndexUseCase creates a new index use case. workers bounds how many
// files are read and tokenized at once; analysis itself is sequential.
func NewIndexUseCase(
	store port.AnalysisStore,
	walker port.FileWalker,
	tokenizer port.Tokenizer,
	analyze *AnalyzeUseCase,
	workers int,
) *IndexUseCase {
	if workers <= 0 {
		workers = 1
	}
	return &IndexUseCase{
		store:     store,
		walker:    walker,
		tokenizer: tokenizer,
		analyze:   analyze,
		workers:   workers,
		log:       logger.WithComponent("indexer"),
	}
}

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	FilesAnalyzed int
	FilesSkipped  int
	FilesDeleted  int
	FilesPending  int // not analyzed because the run was cancelled
	TermInstances int
	DistinctTerms int
	CorpusVector  *domain.TermVector
	Cancelled     bool
	Errors        []string
}

// Index analyzes new and modified files under root, removes documents whose
// files are gone, and refreshes the corpus vector and stats. If ctx is
// cancelled the documents analyzed so far stay stored, the result has
// Cancelled set and the context error is returned. An analysis error stops
// the run the same way but leaves Cancelled unset.
func (u *IndexUseCase) Index(ctx context.Context, root string, progress ProgressFunc) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}
	existingMap := make(map[string]domain.Document, len(existingDocs))
	for _, doc := range existingDocs {
		existingMap[doc.Path] = doc
	}

	seenPaths := make(map[string]bool, len(files))
	var pending []port.FileInfo
	for _, file := range files {
		seenPaths[file.Path] = true
		if existing, ok := existingMap[file.Path]; ok && existing.ModTime.Unix() >= file.ModTime {
			result.FilesSkipped++
			if u.analyze.metrics != nil {
				u.analyze.metrics.DocumentsSkipped.Inc()
			}
			continue
		}
		pending = append(pending, file)
	}

	docs, loadErrs := u.loadDocuments(ctx, pending)
	result.Errors = append(result.Errors, loadErrs...)
	if err := ctx.Err(); err != nil {
		result.Cancelled = true
		result.FilesPending = len(pending)
		return result, err
	}

	u.log.Info("analyzing documents",
		"analyzer", u.analyze.Analyzer().Name(),
		"pending", len(docs),
		"skipped", result.FilesSkipped,
	)

	analyzed, runErr := u.analyze.AnalyzeCorpus(ctx, docs, progress, func(doc *domain.Document) error {
		if err := u.store.PutAnalysis(*doc); err != nil {
			return fmt.Errorf("failed to store analysis for %s: %w", doc.Path, err)
		}
		result.TermInstances += len(doc.Analysis.TermInstances)
		return nil
	})
	result.FilesAnalyzed = analyzed
	if runErr != nil && ctx.Err() != nil {
		result.Cancelled = true
		result.FilesPending = len(docs) - analyzed
	}

	if runErr == nil {
		for path, doc := range existingMap {
			if seenPaths[path] {
				continue
			}
			if err := u.store.DeleteDoc(doc.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
				continue
			}
			result.FilesDeleted++
		}
	}

	// documents analyzed before a stop stay stored, so the corpus is
	// refreshed either way
	if err := u.refreshCorpus(result); err != nil {
		return result, err
	}
	return result, runErr
}

// loadDocuments reads and tokenizes files concurrently, preserving order.
// Files that cannot be read are reported and left out.
func (u *IndexUseCase) loadDocuments(ctx context.Context, files []port.FileInfo) ([]*domain.Document, []string) {
	loaded := make([]*domain.Document, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := u.loadDocument(file)
			if err != nil {
				failures[i] = err
				return nil
			}
			loaded[i] = doc
			return nil
		})
	}
	_ = g.Wait()

	var docs []*domain.Document
	var errs []string
	for i, doc := range loaded {
		if failures[i] != nil {
			errs = append(errs, fmt.Sprintf("failed to load %s: %v", files[i].Path, failures[i]))
			if u.analyze.metrics != nil {
				u.analyze.metrics.DocumentsFailed.Inc()
			}
			continue
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, errs
}

func (u *IndexUseCase) loadDocument(file port.FileInfo) (*domain.Document, error) {
	content, err := fs.ReadFile(file.Path)
	if err != nil {
		return nil, err
	}
	text := content
	if pt, ok := u.tokenizer.(interface{ PlainText(string) string }); ok {
		text = pt.PlainText(content)
	}
	return &domain.Document{
		ID:      generateDocID(file.Path),
		Path:    file.Path,
		ModTime: time.Unix(file.ModTime, 0),
		Text:    text,
		Tokens:  u.tokenizer.Tokenize(content),
	}, nil
}

// refreshCorpus rebuilds the corpus vector and stats from the stored documents.
func (u *IndexUseCase) refreshCorpus(result *IndexResult) error {
	agg := NewAggregator()
	if err := agg.AddFromStore(u.store); err != nil {
		return fmt.Errorf("failed to aggregate corpus: %w", err)
	}
	corpus := agg.Vector()
	if err := u.store.PutCorpusVector(corpus); err != nil {
		return fmt.Errorf("failed to store corpus vector: %w", err)
	}

	docs, err := u.store.ListDocs()
	if err != nil {
		return fmt.Errorf("failed to list docs: %w", err)
	}
	totalTokens := 0
	for _, doc := range docs {
		tokens, err := u.store.GetTokens(doc.ID)
		if err != nil {
			return fmt.Errorf("failed to load tokens for %s: %w", doc.Path, err)
		}
		totalTokens += len(tokens)
	}

	stats := domain.Stats{
		TotalDocs:      len(docs),
		TotalTokens:    totalTokens,
		TotalInstances: corpus.TotalCount,
		DistinctTerms:  corpus.Len(),
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	result.CorpusVector = corpus
	result.DistinctTerms = corpus.Len()
	return nil
}

// generateDocID creates a stable ID for a document based on its path.
func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
