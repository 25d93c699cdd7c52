package domain

import "errors"

var (
	// ErrNoExamples signals a card without usable example sentences.
	ErrNoExamples = errors.New("card has no examples")
	// ErrTooFewCollocations signals a card below the collocation minimum.
	ErrTooFewCollocations = errors.New("card has fewer than 2 collocations")
	// ErrUnknownPOS signals an unrecognized part-of-speech tag.
	ErrUnknownPOS = errors.New("unknown part of speech")
	// ErrUnknownLevel signals an unrecognized CEFR level.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrLemmaNotFound signals an example sentence without the card lemma.
	ErrLemmaNotFound = errors.New("lemma not found in sentence")
	// ErrPromptBand signals a prompt outside the allowed character band.
	ErrPromptBand = errors.New("prompt length outside band")
	// ErrMissingHeader signals a CSV file without a usable header row.
	ErrMissingHeader = errors.New("missing required header")
	// ErrMissingColumn signals a CSV file without a structurally required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedType signals an unrecognized exercise type.
	ErrUnsupportedType = errors.New("unsupported exercise type")
	// ErrMultiValueCell signals a pipe-delimited cell where a single value is required.
	ErrMultiValueCell = errors.New("multi-value cell in canonical format")
)
