package analyzer

import (
	"errors"
	"testing"

	"termex/internal/domain"
)

func TestWhitespaceTokenizer_Offsets(t *testing.T) {
	tok := NewWhitespaceTokenizer()

	text := "  the cat\tsat.\n"
	tokens := tok.Tokenize(text)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}

	want := []struct {
		text       string
		start, end int
	}{
		{"the", 2, 5},
		{"cat", 6, 9},
		{"sat.", 10, 14},
	}
	for i, w := range want {
		got := tokens[i]
		if got.Text != w.text || got.StartChar() != w.start || got.EndChar() != w.end {
			t.Errorf("token %d = %q [%d,%d), want %q [%d,%d)", i, got.Text, got.StartChar(), got.EndChar(), w.text, w.start, w.end)
		}
		if text[got.Start:got.End] != got.Text {
			t.Errorf("token %d span does not match its text", i)
		}
		if got.Annotated() {
			t.Errorf("whitespace tokens should carry no tags")
		}
	}
}

func TestWhitespaceTokenizer_EmptyInput(t *testing.T) {
	tok := NewWhitespaceTokenizer()

	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", len(tokens))
	}
	if tokens := tok.Tokenize(" \n\t "); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for blank input, got %d", len(tokens))
	}
}

func TestWhitespaceTokenizer_MultibyteOffsets(t *testing.T) {
	text := "café au lait"
	tokens := NewWhitespaceTokenizer().Tokenize(text)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[1].StartChar() != len("café ") {
		t.Errorf("expected byte offset %d, got %d", len("café "), tokens[1].StartChar())
	}
}

func TestTaggedTokenizer(t *testing.T) {
	tok := NewTaggedTokenizer()

	text := "New/NNP/LOCATION York/NNP/LOCATION is/VBZ/O big/JJ/O"
	tokens := tok.Tokenize(text)
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}

	plain := tok.PlainText(text)
	if plain != "New York is big" {
		t.Errorf("unexpected plain text %q", plain)
	}
	for i, tk := range tokens {
		if plain[tk.Start:tk.End] != tk.Text {
			t.Errorf("token %d span %v does not point at %q in plain text", i, tk.Span, tk.Text)
		}
		if !tk.Annotated() {
			t.Errorf("token %d should be annotated", i)
		}
	}
	if tokens[0].POS != "NNP" || tokens[0].NER != "LOCATION" {
		t.Errorf("unexpected tags on first token: %+v", tokens[0])
	}
}

func TestSplitTagged(t *testing.T) {
	tests := []struct {
		input          string
		word, pos, ner string
	}{
		{"fox/NN/O", "fox", "NN", "O"},
		{"and/or/CC/O", "and/or", "CC", "O"},
		{"//SYM/O", "/", "SYM", "O"},
		{"fox", "fox", "", ""},
		{"fox/NN", "fox/NN", "", ""},
		{"fox/NN/", "fox/NN/", "", ""},
		{"fox//O", "fox//O", "", ""},
	}

	for _, tt := range tests {
		word, pos, ner := splitTagged(tt.input)
		if word != tt.word || pos != tt.pos || ner != tt.ner {
			t.Errorf("splitTagged(%q) = (%q, %q, %q), want (%q, %q, %q)", tt.input, word, pos, ner, tt.word, tt.pos, tt.ner)
		}
	}
}

func TestNewTokenizer(t *testing.T) {
	if _, err := NewTokenizer(FormatText); err != nil {
		t.Errorf("text format: %v", err)
	}
	if _, err := NewTokenizer(FormatTagged); err != nil {
		t.Errorf("tagged format: %v", err)
	}
	if _, err := NewTokenizer("conll"); !errors.Is(err, domain.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
