package utils

import "errors"

// Sentinel errors raised synchronously at the operation boundary. On any of
// these, the engine's state is left exactly as it was before the call.
var (
	ErrInvalidDocID = errors.New("invalid document id")
	ErrInvalidWord  = errors.New("invalid word")
	ErrInvalidQuery = errors.New("invalid query")
	ErrOutOfRange   = errors.New("document id out of range")
)
