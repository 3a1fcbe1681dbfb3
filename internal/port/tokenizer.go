package port

import "termex/internal/domain"

// Tokenizer turns raw document text into an ordered, non-overlapping token
// sequence with byte offsets into text.
type Tokenizer interface {
	Tokenize(text string) []domain.Token
}
