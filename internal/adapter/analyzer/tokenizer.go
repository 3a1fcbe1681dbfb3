package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"termex/internal/domain"
	"termex/internal/port"
)

// Token formats understood by NewTokenizer.
const (
	FormatText   = "text"
	FormatTagged = "tagged"
)

func NewTokenizer(format string) (port.Tokenizer, error) {
	switch format {
	case FormatText, "":
		return NewWhitespaceTokenizer(), nil
	case FormatTagged:
		return NewTaggedTokenizer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

// WhitespaceTokenizer splits text on runs of Unicode whitespace. Tokens carry
// no POS or NER tags.
type WhitespaceTokenizer struct{}

func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

func (t *WhitespaceTokenizer) Tokenize(text string) []domain.Token {
	var tokens []domain.Token
	for _, span := range splitSpans(text) {
		tokens = append(tokens, domain.Token{
			Text: text[span.Start:span.End],
			Span: span,
		})
	}
	return tokens
}

// splitSpans returns the byte spans of the non-whitespace runs of text.
func splitSpans(text string) []domain.Span {
	var spans []domain.Span
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, domain.Span{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, domain.Span{Start: start, End: len(text)})
	}
	return spans
}

// TaggedTokenizer reads pre-annotated text where each whitespace-separated
// token is written word/POS/NER, e.g. "New/NNP/LOCATION York/NNP/LOCATION".
// Offsets refer to the plain text obtained by joining the words with single
// spaces; PlainText rebuilds it.
type TaggedTokenizer struct{}

func NewTaggedTokenizer() *TaggedTokenizer {
	return &TaggedTokenizer{}
}

func (t *TaggedTokenizer) Tokenize(text string) []domain.Token {
	var tokens []domain.Token
	offset := 0
	for _, span := range splitSpans(text) {
		word, pos, ner := splitTagged(text[span.Start:span.End])
		tokens = append(tokens, domain.Token{
			Text: word,
			Span: domain.Span{Start: offset, End: offset + len(word)},
			POS:  pos,
			NER:  ner,
		})
		offset += len(word) + 1
	}
	return tokens
}

// PlainText returns the text the tagged token offsets refer to.
func (t *TaggedTokenizer) PlainText(text string) string {
	var words []string
	for _, span := range splitSpans(text) {
		word, _, _ := splitTagged(text[span.Start:span.End])
		words = append(words, word)
	}
	return strings.Join(words, " ")
}

// splitTagged splits "word/POS/NER" from the right so words may contain '/'.
// A field without both tags is returned as a bare word.
func splitTagged(field string) (word, pos, ner string) {
	i := strings.LastIndexByte(field, '/')
	if i <= 0 || i == len(field)-1 {
		return field, "", ""
	}
	j := strings.LastIndexByte(field[:i], '/')
	if j <= 0 || j == i-1 {
		return field, "", ""
	}
	return field[:j], field[j+1:i], field[i+1:]
}
