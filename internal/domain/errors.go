package domain

import "errors"

// Sentinel errors used across layers.
var (
	// ErrNoIngredients rejects a generation request with nothing to cook from.
	ErrNoIngredients = errors.New("no ingredients provided")
	// ErrEmptyUtterance rejects synthesis of empty text.
	ErrEmptyUtterance = errors.New("empty utterance")
)
