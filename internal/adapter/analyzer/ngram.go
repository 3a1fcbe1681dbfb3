package analyzer

import (
	"fmt"
	"strings"

	"termex/internal/domain"
)

// NgramAnalyzer emits every n-gram of length 1..Order that passes the
// enabled filters.
type NgramAnalyzer struct {
	Order          int
	POSNERFilter   bool
	StopwordFilter bool
}

func NewNgramAnalyzer(order int, posnerFilter, stopwordFilter bool) *NgramAnalyzer {
	return &NgramAnalyzer{
		Order:          order,
		POSNERFilter:   posnerFilter,
		StopwordFilter: stopwordFilter,
	}
}

// CandidateStats counts n-gram candidates per length (index k-1).
type CandidateStats struct {
	Considered       []int
	StopwordRejected []int
	POSNERRejected   []int
	Emitted          []int
}

func newCandidateStats(order int) CandidateStats {
	return CandidateStats{
		Considered:       make([]int, order),
		StopwordRejected: make([]int, order),
		POSNERRejected:   make([]int, order),
		Emitted:          make([]int, order),
	}
}

func (a *NgramAnalyzer) Analyze(tokens []domain.Token) ([]*domain.TermInstance, error) {
	out, _, err := a.AnalyzeWithStats(tokens)
	return out, err
}

// AnalyzeWithStats is Analyze plus per-length candidate counts.
func (a *NgramAnalyzer) AnalyzeWithStats(tokens []domain.Token) ([]*domain.TermInstance, CandidateStats, error) {
	if a.Order < 1 {
		return nil, CandidateStats{}, fmt.Errorf("%w: got %d", domain.ErrInvalidOrder, a.Order)
	}
	stats := newCandidateStats(a.Order)
	if a.POSNERFilter {
		if err := checkAnnotated(tokens); err != nil {
			return nil, stats, err
		}
	}

	var out []*domain.TermInstance
	for i := range tokens {
		for k := 1; k <= a.Order; k++ {
			last := i + k - 1
			if last >= len(tokens) {
				continue
			}
			stats.Considered[k-1]++

			if a.StopwordFilter && (IsStopword(tokens[i].Text) || IsStopword(tokens[last].Text)) {
				stats.StopwordRejected[k-1]++
				continue
			}
			if a.POSNERFilter {
				span := tokens[i : last+1]
				if !HasEntityAgreement(span) && !IsBaseNounPhrase(span) {
					stats.POSNERRejected[k-1]++
					continue
				}
			}
			out = append(out, domain.NewTermInstance(tokens, i, last))
			stats.Emitted[k-1]++
		}
	}
	return out, stats, nil
}

func (a *NgramAnalyzer) Name() string {
	var filters []string
	if a.StopwordFilter {
		filters = append(filters, "stopword")
	}
	if a.POSNERFilter {
		filters = append(filters, "posner")
	}
	if len(filters) == 0 {
		return fmt.Sprintf("ngram(order=%d)", a.Order)
	}
	return fmt.Sprintf("ngram(order=%d,filters=%s)", a.Order, strings.Join(filters, "+"))
}

func checkAnnotated(tokens []domain.Token) error {
	for i, tok := range tokens {
		if !tok.Annotated() {
			return fmt.Errorf("%w: token %d (%q) has pos=%q ner=%q", domain.ErrMissingAnnotation, i, tok.Text, tok.POS, tok.NER)
		}
	}
	return nil
}
