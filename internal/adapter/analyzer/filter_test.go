package analyzer

import (
	"testing"

	"termex/internal/domain"
)

// taggedTokens builds tokens from (text, pos, ner) triples separated by
// single spaces.
func taggedTokens(triples ...string) []domain.Token {
	var tokens []domain.Token
	offset := 0
	for i := 0; i+2 < len(triples); i += 3 {
		tokens = append(tokens, domain.Token{
			Text: triples[i],
			Span: domain.Span{Start: offset, End: offset + len(triples[i])},
			POS:  triples[i+1],
			NER:  triples[i+2],
		})
		offset += len(triples[i]) + 1
	}
	return tokens
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"the", "The", "THE", "of", "by", "-", "--", ".", ",", ":", ";"} {
		if !IsStopword(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	for _, w := range []string{"cat", "there", "theory", "---", "", "is", "at"} {
		if IsStopword(w) {
			t.Errorf("expected %q not to be a stopword", w)
		}
	}
}

func TestTagFamilies(t *testing.T) {
	for _, tag := range []string{"NN", "NNS", "NNP", "NNPS", "N", "^"} {
		if !IsNominal(tag) {
			t.Errorf("expected %q nominal", tag)
		}
	}
	for _, tag := range []string{"JJ", "VB", "NP", "n", "", "A"} {
		if IsNominal(tag) {
			t.Errorf("expected %q not nominal", tag)
		}
	}
	for _, tag := range []string{"JJ", "JJR", "JJS", "A"} {
		if !IsAdjective(tag) {
			t.Errorf("expected %q adjective", tag)
		}
	}
	for _, tag := range []string{"NN", "RB", "J", ""} {
		if IsAdjective(tag) {
			t.Errorf("expected %q not adjective", tag)
		}
	}
}

func TestIsBaseNounPhrase(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"noun", []string{"NN"}, true},
		{"adj adj noun", []string{"JJ", "JJ", "NN"}, true},
		{"noun noun", []string{"NN", "NNS"}, true},
		{"simplified tagset", []string{"A", "N", "^"}, true},
		{"adj only", []string{"JJ"}, false},
		{"noun verb", []string{"NN", "VBZ"}, false},
		{"noun adj noun", []string{"NN", "JJ", "NN"}, false},
		{"det noun", []string{"DT", "NN"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		span := make([]domain.Token, len(tt.tags))
		for i, tag := range tt.tags {
			span[i] = domain.Token{Text: "w", POS: tag, NER: "O"}
		}
		if got := IsBaseNounPhrase(span); got != tt.want {
			t.Errorf("%s: IsBaseNounPhrase(%v) = %v, want %v", tt.name, tt.tags, got, tt.want)
		}
	}
}

func TestHasEntityAgreement(t *testing.T) {
	tests := []struct {
		name string
		ners []string
		want bool
	}{
		{"location pair", []string{"LOCATION", "LOCATION"}, true},
		{"single person", []string{"PERSON"}, true},
		{"organization", []string{"ORGANIZATION", "ORGANIZATION", "ORGANIZATION"}, true},
		{"misc", []string{"MISC"}, true},
		{"mixed", []string{"PERSON", "LOCATION"}, false},
		{"outside", []string{"O", "O"}, false},
		{"date not accepted", []string{"DATE"}, false},
		{"untagged", []string{"", ""}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		span := make([]domain.Token, len(tt.ners))
		for i, ner := range tt.ners {
			span[i] = domain.Token{Text: "w", POS: "NNP", NER: ner}
		}
		if got := HasEntityAgreement(span); got != tt.want {
			t.Errorf("%s: HasEntityAgreement(%v) = %v, want %v", tt.name, tt.ners, got, tt.want)
		}
	}
}
