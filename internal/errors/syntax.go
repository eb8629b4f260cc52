package errors

import (
	"errors"
	"fmt"
)

// Sentinels matched by SyntaxError.Is, one per Kind
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrKey             = errors.New("invalid map key")
	ErrAllocation      = errors.New("buffer limit exceeded")
	ErrTooDeep         = errors.New("maximum nesting depth exceeded")
	ErrOverflow        = errors.New("integer out of range")
	ErrRead            = errors.New("read error")
)

// Kind classifies a failed parse
type Kind string

const (
	KindUnexpectedToken Kind = "unexpected_token"
	KindUnexpectedEOF   Kind = "unexpected_eof"
	KindKey             Kind = "key"
	KindAllocation      Kind = "allocation"
	KindDepth           Kind = "depth"
	KindOverflow        Kind = "overflow"
	KindIO              Kind = "io"
)

var kindSentinels = map[Kind]error{
	KindUnexpectedToken: ErrUnexpectedToken,
	KindUnexpectedEOF:   ErrUnexpectedEOF,
	KindKey:             ErrKey,
	KindAllocation:      ErrAllocation,
	KindDepth:           ErrTooDeep,
	KindOverflow:        ErrOverflow,
	KindIO:              ErrRead,
}

// SyntaxError describes why a parse failed and where.
//
// Token and EOF record the lookahead at the point of failure. For KindKey
// the error wraps the failure that occurred while reading the key.
type SyntaxError struct {
	Kind   Kind
	Offset int64
	Token  byte
	EOF    bool
	Err    error
}

// Error implements error interface
func (e *SyntaxError) Error() string {
	switch e.Kind {
	case KindUnexpectedToken, KindUnexpectedEOF:
		return fmt.Sprintf("%s at offset %d", e.describe(), e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %v", kindSentinels[e.Kind], e.Offset, e.Err)
	}
	return fmt.Sprintf("%v at offset %d", kindSentinels[e.Kind], e.Offset)
}

// Unwrap returns the underlying cause, if any
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *SyntaxError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *SyntaxError) describe() string {
	if e.EOF {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected token '%c'", e.Token)
}

// Unexpected builds an unexpected-token or unexpected-end-of-input error
// for the given lookahead.
func Unexpected(offset int64, token byte, eof bool) *SyntaxError {
	kind := KindUnexpectedToken
	if eof {
		kind = KindUnexpectedEOF
	}
	return &SyntaxError{Kind: kind, Offset: offset, Token: token, EOF: eof}
}

// Diagnostic returns the single line reported to the user for a failed
// parse. Failures inside a map key produce no text.
func Diagnostic(err error) string {
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		return ""
	}
	switch synErr.Kind {
	case KindKey:
		return ""
	case KindUnexpectedToken, KindUnexpectedEOF:
		return synErr.describe()
	case KindIO:
		return fmt.Sprintf("read error: %v", synErr.Err)
	default:
		return kindSentinels[synErr.Kind].Error()
	}
}
