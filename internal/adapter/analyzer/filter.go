package analyzer

import (
	"strings"

	"termex/internal/domain"
)

var stopwords = map[string]struct{}{
	"the": {}, "that": {}, "a": {}, "an": {}, "on": {}, "of": {}, "to": {},
	"and": {}, "but": {}, "as": {}, "for": {}, "from": {}, "in": {},
	"with": {}, "by": {},
	"-": {}, "--": {}, ".": {}, ",": {}, ":": {}, ";": {},
}

// Entity categories accepted by HasEntityAgreement.
var entityTags = map[string]struct{}{
	"PERSON":       {},
	"ORGANIZATION": {},
	"LOCATION":     {},
	"MISC":         {},
}

// IsStopword reports whether w is a stopword. Matching is case-insensitive
// and exact.
func IsStopword(w string) bool {
	_, ok := stopwords[strings.ToLower(w)]
	return ok
}

// IsNominal accepts the Penn noun family (NN, NNS, NNP, ...) and the N and ^
// codes of simplified tagsets.
func IsNominal(tag string) bool {
	return strings.HasPrefix(tag, "NN") || tag == "N" || tag == "^"
}

// IsAdjective accepts the Penn adjective family (JJ, JJR, JJS) and the A code.
func IsAdjective(tag string) bool {
	return strings.HasPrefix(tag, "JJ") || tag == "A"
}

type npState int

const (
	adjPhase npState = iota
	nounPhase
)

// IsBaseNounPhrase reports whether the POS tags of span match
// adjective* nominal+.
func IsBaseNounPhrase(span []domain.Token) bool {
	if len(span) == 0 || !IsNominal(span[len(span)-1].POS) {
		return false
	}
	state := adjPhase
	for _, tok := range span {
		switch {
		case state == adjPhase && IsAdjective(tok.POS):
		case IsNominal(tok.POS):
			state = nounPhase
		default:
			return false
		}
	}
	return true
}

// HasEntityAgreement reports whether every token of span carries the same
// accepted entity tag.
func HasEntityAgreement(span []domain.Token) bool {
	if len(span) == 0 {
		return false
	}
	tag := span[0].NER
	if tag == "" {
		return false
	}
	for _, tok := range span[1:] {
		if tok.NER != tag {
			return false
		}
	}
	_, ok := entityTags[tag]
	return ok
}
