package proofdocs

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type the extractor cannot read.
	ErrUnsupportedType = errors.New("unsupported proof document type")

	// ErrNoExtractedText indicates the document has no extracted text stored.
	ErrNoExtractedText = errors.New("no extracted text")
)
