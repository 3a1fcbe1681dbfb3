package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"termex/internal/domain"
	"termex/internal/logger"
	"termex/internal/metrics"
	"termex/internal/port"
)

// AnalyzeDocument runs analyzer over doc's tokens and replaces doc.Analysis
// with a freshly built one. On error doc is left unchanged.
func AnalyzeDocument(analyzer port.DocAnalyzer, doc *domain.Document) error {
	instances, err := analyzer.Analyze(doc.Tokens)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", doc.Path, err)
	}
	doc.Analysis = BuildAnalysis(doc.Tokens, instances)
	return nil
}

// BuildAnalysis builds the term vector and position indexes for instances
// in a single pass.
func BuildAnalysis(tokens []domain.Token, instances []*domain.TermInstance) *domain.Analysis {
	a := domain.NewAnalysis()
	for _, ti := range instances {
		a.TermVector.Increment(ti.TermName)
		a.TermInstances = append(a.TermInstances, ti)

		first := ti.First()
		a.ByStartToken[first] = append(a.ByStartToken[first], ti)

		for _, idx := range ti.TokenIndices {
			a.ByAllTokens[idx] = append(a.ByAllTokens[idx], ti)
		}

		startChar := tokens[first].StartChar()
		a.ByStartChar[startChar] = append(a.ByStartChar[startChar], ti)

		endChar := tokens[ti.Last()].EndChar()
		a.ByEndChar[endChar] = append(a.ByEndChar[endChar], ti)
	}
	return a
}

// ProgressFunc reports corpus progress after each document.
type ProgressFunc func(processed, total int, current string)

// AnalyzeUseCase analyzes documents one at a time.
type AnalyzeUseCase struct {
	analyzer port.DocAnalyzer
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewAnalyzeUseCase creates a new analyze use case. m may be nil.
func NewAnalyzeUseCase(analyzer port.DocAnalyzer, m *metrics.Metrics) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		analyzer: analyzer,
		metrics:  m,
		log:      logger.WithComponent("analyzer"),
	}
}

func (u *AnalyzeUseCase) Analyzer() port.DocAnalyzer {
	return u.analyzer
}

// AnalyzeDocument analyzes a single document and records metrics.
func (u *AnalyzeUseCase) AnalyzeDocument(doc *domain.Document) error {
	start := time.Now()
	if err := AnalyzeDocument(u.analyzer, doc); err != nil {
		return err
	}
	if u.metrics != nil {
		u.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		u.metrics.DocumentsAnalyzed.Inc()
		u.metrics.TermInstances.WithLabelValues(u.analyzer.Name()).Add(float64(len(doc.Analysis.TermInstances)))
	}
	u.log.Debug("document analyzed",
		"doc", doc.Path,
		"tokens", len(doc.Tokens),
		"instances", len(doc.Analysis.TermInstances),
		"terms", doc.Analysis.TermVector.Len(),
	)
	return nil
}

// AnalyzeCorpus analyzes docs in order. ctx is checked before each document,
// never during one: on cancellation the documents before the returned count
// are fully analyzed and the rest are untouched. onAnalyzed, if set, is
// called after each document and a non-nil error from it stops the run.
func (u *AnalyzeUseCase) AnalyzeCorpus(
	ctx context.Context,
	docs []*domain.Document,
	progress ProgressFunc,
	onAnalyzed func(doc *domain.Document) error,
) (int, error) {
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			u.log.Info("analysis cancelled", "analyzed", i, "remaining", len(docs)-i)
			if u.metrics != nil {
				u.metrics.Cancellations.Inc()
			}
			return i, err
		}

		if err := u.AnalyzeDocument(doc); err != nil {
			return i, err
		}
		if onAnalyzed != nil {
			if err := onAnalyzed(doc); err != nil {
				return i + 1, err
			}
		}
		if progress != nil {
			progress(i+1, len(docs), doc.Path)
		}
	}
	return len(docs), nil
}
