package errors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewInputError("file 'doc.json' not found", ErrFileNotFound),
			want: "input: file 'doc.json' not found: file not found",
		},
		{
			name: "syntax cause",
			err:  NewParsingError("failed to parse 'doc.json'", Unexpected(3, '}', false)),
			want: "parsing: failed to parse 'doc.json': unexpected token '}' at offset 3",
		},
		{
			name: "no cause",
			err:  NewOutputError("stdout closed", nil),
			want: "output: stdout closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_UnwrapReachesSyntaxError(t *testing.T) {
	cause := Unexpected(0, 0, true)
	err := NewParsingError("failed to parse 'empty.json'", cause)

	assert.Same(t, cause, err.Unwrap())

	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, KindUnexpectedEOF, synErr.Kind)
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
	assert.Equal(t, "unexpected end of input", Diagnostic(err))
}

func TestAppError_IsMatchesCategory(t *testing.T) {
	err := NewConfigError("max_depth must not be negative", ErrInvalidConfig)

	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeConfig}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeParsing}))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.False(t, err.Is(fs.ErrNotExist))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "input",
			err:  NewInputError("no input provided", ErrNoInput),
			want: "Input error: no input provided",
		},
		{
			name: "parsing wraps syntax error",
			err:  NewParsingError("failed to parse 'doc.json'", Unexpected(5, 'x', false)),
			want: "Parsing error: failed to parse 'doc.json'",
		},
		{
			name: "config",
			err:  NewConfigError("bad max_depth", nil),
			want: "Configuration error: bad max_depth",
		},
		{
			name: "output",
			err:  NewOutputError("failed to write output", nil),
			want: "Output error: failed to write output",
		},
		{
			name: "bare sentinel",
			err:  ErrNoInput,
			want: "Error: No input provided. Please name exactly one input file, or - for stdin.",
		},
		{
			name: "missing file sentinel",
			err:  ErrFileNotFound,
			want: "Error: The specified file could not be found. Please check the file path.",
		},
		{
			name: "other",
			err:  errors.New("disk on fire"),
			want: "Error: disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserFriendlyError(tt.err))
		})
	}
}
