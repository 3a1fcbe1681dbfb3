package domain

import "fmt"

// Analysis holds the result of analyzing one document. The four position
// indexes are derived views over TermInstances and are rebuilt together.
type Analysis struct {
	TermVector    *TermVector
	TermInstances []*TermInstance

	ByStartToken map[int][]*TermInstance
	ByAllTokens  map[int][]*TermInstance
	ByStartChar  map[int][]*TermInstance
	ByEndChar    map[int][]*TermInstance
}

func NewAnalysis() *Analysis {
	return &Analysis{
		TermVector:    NewTermVector(),
		TermInstances: []*TermInstance{},
		ByStartToken:  make(map[int][]*TermInstance),
		ByAllTokens:   make(map[int][]*TermInstance),
		ByStartChar:   make(map[int][]*TermInstance),
		ByEndChar:     make(map[int][]*TermInstance),
	}
}

// StartingAtToken returns the instances whose first token is tokIndex.
func (a *Analysis) StartingAtToken(tokIndex int) []*TermInstance {
	return a.ByStartToken[tokIndex]
}

// CoveringToken returns every instance that spans tokIndex.
func (a *Analysis) CoveringToken(tokIndex int) []*TermInstance {
	return a.ByAllTokens[tokIndex]
}

func (a *Analysis) StartingAtChar(offset int) []*TermInstance {
	return a.ByStartChar[offset]
}

func (a *Analysis) EndingAtChar(offset int) []*TermInstance {
	return a.ByEndChar[offset]
}

// Verify checks that every term instance is reachable from each index under
// the expected keys, and that the indexes hold nothing else.
func (a *Analysis) Verify(tokens []Token) error {
	total, allTok := 0, 0
	for _, ti := range a.TermInstances {
		if ti.Len() == 0 {
			return fmt.Errorf("term instance %q has no tokens", ti.TermName)
		}
		if ti.First() < 0 || ti.Last() >= len(tokens) {
			return fmt.Errorf("term instance %q lies outside tokens [0,%d)", ti.TermName, len(tokens))
		}
		if countIn(a.ByStartToken[ti.First()], ti) != 1 {
			return fmt.Errorf("term instance %q not indexed once at start token %d", ti.TermName, ti.First())
		}
		for _, idx := range ti.TokenIndices {
			if countIn(a.ByAllTokens[idx], ti) != 1 {
				return fmt.Errorf("term instance %q not indexed once at token %d", ti.TermName, idx)
			}
		}
		sc := tokens[ti.First()].StartChar()
		if countIn(a.ByStartChar[sc], ti) != 1 {
			return fmt.Errorf("term instance %q not indexed once at start char %d", ti.TermName, sc)
		}
		ec := tokens[ti.Last()].EndChar()
		if countIn(a.ByEndChar[ec], ti) != 1 {
			return fmt.Errorf("term instance %q not indexed once at end char %d", ti.TermName, ec)
		}
		total++
		allTok += ti.Len()
	}
	for idx, bucket := range a.ByAllTokens {
		for _, ti := range bucket {
			if !ti.Covers(idx) {
				return fmt.Errorf("term instance %q indexed at token %d it does not cover", ti.TermName, idx)
			}
		}
	}
	if bucketTotal(a.ByStartToken) != total || bucketTotal(a.ByStartChar) != total ||
		bucketTotal(a.ByEndChar) != total || bucketTotal(a.ByAllTokens) != allTok {
		return fmt.Errorf("indexes hold entries not present in the term instance list")
	}
	if a.TermVector.TotalCount != total {
		return fmt.Errorf("term vector total %d does not match %d instances", a.TermVector.TotalCount, total)
	}
	return nil
}

func countIn(bucket []*TermInstance, ti *TermInstance) int {
	n := 0
	for _, b := range bucket {
		if b == ti {
			n++
		}
	}
	return n
}

func bucketTotal(index map[int][]*TermInstance) int {
	n := 0
	for _, bucket := range index {
		n += len(bucket)
	}
	return n
}
