package domain

import "errors"

var (
	// ErrMissingAnnotation is returned when POS/NER filtering is requested on
	// a document whose tokens do not all carry POS and NER tags.
	ErrMissingAnnotation = errors.New("posner filter requires POS and NER tags on every token")
	ErrInvalidOrder      = errors.New("n-gram order must be at least 1")
	ErrUnknownAnalyzer   = errors.New("unknown analyzer")
	ErrUnknownFormat     = errors.New("unknown token format")
	ErrDocumentNotFound  = errors.New("document not found")
)
