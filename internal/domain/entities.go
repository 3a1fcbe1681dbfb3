package domain

import (
	"sort"
	"strings"
	"time"
)

// Span is a half-open [Start, End) interval of byte offsets into a document.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Token is one unit produced by a tokenizer. POS and NER are empty unless an
// annotator attached them.
type Token struct {
	Text string `json:"text"`
	Span
	POS string `json:"pos,omitempty"`
	NER string `json:"ner,omitempty"`
}

func (t Token) StartChar() int { return t.Start }

func (t Token) EndChar() int { return t.End }

func (t Token) Annotated() bool {
	return t.POS != "" && t.NER != ""
}

// TermInstance is one occurrence of a term over a contiguous run of tokens.
type TermInstance struct {
	TermName     string `json:"term"`
	TokenIndices []int  `json:"tokens"`
}

// NewTermInstance builds the instance covering tokens[first..last].
func NewTermInstance(tokens []Token, first, last int) *TermInstance {
	inds := make([]int, 0, last-first+1)
	parts := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		inds = append(inds, i)
		parts = append(parts, strings.ToLower(tokens[i].Text))
	}
	return &TermInstance{
		TermName:     strings.Join(parts, "_"),
		TokenIndices: inds,
	}
}

func (ti *TermInstance) First() int {
	return ti.TokenIndices[0]
}

func (ti *TermInstance) Last() int {
	return ti.TokenIndices[len(ti.TokenIndices)-1]
}

func (ti *TermInstance) Len() int {
	return len(ti.TokenIndices)
}

func (ti *TermInstance) Covers(tokIndex int) bool {
	return tokIndex >= ti.First() && tokIndex <= ti.Last()
}

// TermVector counts term occurrences.
type TermVector struct {
	Counts     map[string]int `json:"counts"`
	TotalCount int            `json:"total"`
}

func NewTermVector() *TermVector {
	return &TermVector{Counts: make(map[string]int)}
}

func (tv *TermVector) Increment(term string) {
	tv.Counts[term]++
	tv.TotalCount++
}

func (tv *TermVector) Count(term string) int {
	return tv.Counts[term]
}

// Len returns the number of distinct terms.
func (tv *TermVector) Len() int {
	return len(tv.Counts)
}

// Add folds other into tv.
func (tv *TermVector) Add(other *TermVector) {
	if other == nil {
		return
	}
	for term, n := range other.Counts {
		tv.Counts[term] += n
	}
	tv.TotalCount += other.TotalCount
}

type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Top returns the n most frequent terms, ties broken alphabetically.
// n <= 0 returns every term.
func (tv *TermVector) Top(n int) []TermCount {
	out := make([]TermCount, 0, len(tv.Counts))
	for term, c := range tv.Counts {
		out = append(out, TermCount{Term: term, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

type Document struct {
	ID      string
	Path    string
	ModTime time.Time
	Text    string
	Tokens  []Token

	// Analysis is nil until the document has been analyzed.
	Analysis *Analysis
}

type Stats struct {
	TotalDocs      int `json:"total_docs"`
	TotalTokens    int `json:"total_tokens"`
	TotalInstances int `json:"total_instances"`
	DistinctTerms  int `json:"distinct_terms"`
}
