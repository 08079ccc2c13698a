package metastring

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSeparator is returned for a pair token without any '-'.
	ErrMissingSeparator = errors.New("missing key-value separator")
	// ErrBlankPair is returned for a token whose key and value are both empty.
	ErrBlankPair = errors.New("blank key and value")
	// ErrMultipleSeparators is returned when a value would contain '-'.
	ErrMultipleSeparators = errors.New("multiple key-value separators")
)

// ParseError describes the pair token that made a filename unparseable.
type ParseError struct {
	Input string
	Token string
	// Index is the zero-based position of Token within the pairs segment.
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: pair %d %q: %v", e.Input, e.Index+1, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
