package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/argo/internal/errors" // Custom errors package
	"github.com/mcncl/argo/internal/models"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds map nesting when no explicit limit is configured.
const DefaultMaxDepth = 512

const (
	initialStringCapacity = 16
	initialMapCapacity    = 4
)

// Options controls limits and strictness of a parse. A zero limit means
// unlimited.
type Options struct {
	// MaxDepth is the deepest map nesting accepted
	MaxDepth int
	// MaxStringBytes caps the decoded length of any single string, keys included
	MaxStringBytes int
	// MaxPairs caps the number of pairs in any single map
	MaxPairs int
	// AllowTrailing skips the end-of-input check after the top-level value
	AllowTrailing bool
	// Logger receives debug events; nil disables logging
	Logger *zerolog.Logger
}

// DefaultOptions returns the options used by Parse and ParseString
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Parser reads a single value from a stream. It holds no per-parse state
// and is safe for concurrent use.
type Parser struct {
	opts   Options
	logger zerolog.Logger
}

// NewParser creates a Parser with default options.
func NewParser() *Parser {
	return NewParserWithOptions(DefaultOptions())
}

// NewParserWithOptions creates a Parser with custom options.
func NewParserWithOptions(opts Options) *Parser {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Parser{opts: opts, logger: logger}
}

// Parse reads exactly one value from reader.
//
// On failure the returned value is nil and the error is an
// *errors.SyntaxError; errors.Diagnostic renders it for the user.
// ParseFile wraps it in a parsing *errors.AppError naming the file.
func (p *Parser) Parse(reader io.Reader) (models.Value, error) {
	s := &state{cur: NewCursor(reader), opts: p.opts}

	value, err := s.parseValue()
	if err == nil && !p.opts.AllowTrailing {
		err = s.expectEnd()
	}
	if err != nil {
		var synErr *errors.SyntaxError
		if stderrors.As(err, &synErr) {
			p.logger.Debug().Str("kind", string(synErr.Kind)).Int64("offset", synErr.Offset).Msg("parse failed")
		}
		return nil, err
	}

	p.logger.Debug().Str("kind", value.Kind().String()).Int64("bytes", s.cur.Offset()).Msg("parsed value")
	return value, nil
}

// ParseString parses a value held in a string
func (p *Parser) ParseString(input string) (models.Value, error) {
	return p.Parse(strings.NewReader(input))
}

// ParseFile parses the value stored in the file at filePath
func (p *Parser) ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.Warn().Err(err).Str("path", filePath).Msg("error closing file")
		}
	}()

	value, err := p.Parse(file)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to parse '%s'", filePath), err)
	}
	return value, nil
}

// Parse reads one value from reader using DefaultOptions
func Parse(reader io.Reader) (models.Value, error) {
	return NewParser().Parse(reader)
}

// ParseString parses a value from a string using DefaultOptions
func ParseString(input string) (models.Value, error) {
	return NewParser().ParseString(input)
}

// state is the per-call parsing state; one exists for every Parse call.
type state struct {
	cur   *Cursor
	opts  Options
	depth int
}

// parseValue dispatches on the next byte without consuming it.
func (s *state) parseValue() (models.Value, error) {
	next, ok := s.cur.Peek()
	if !ok {
		return nil, s.cur.Unexpected()
	}

	switch {
	case next == '"':
		str, err := s.parseString()
		if err != nil {
			return nil, err
		}
		return str, nil
	case next == '{':
		m, err := s.parseMap()
		if err != nil {
			return nil, err
		}
		return m, nil
	case next == '-' || isDigit(next):
		n, err := s.parseInteger()
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, s.cur.Unexpected()
}

// parseString reads '"' char* '"'. Only \" and \\ are escapes.
func (s *state) parseString() (models.String, error) {
	if !s.cur.Accept('"') {
		return "", s.cur.Unexpected()
	}

	buf := make([]byte, 0, initialStringCapacity)
	for {
		c, ok := s.cur.Peek()
		if !ok {
			return "", s.cur.Unexpected()
		}
		if c == '"' {
			break
		}
		_, _ = s.cur.Next()

		if c == '\\' {
			next, ok := s.cur.Peek()
			if !ok || (next != '"' && next != '\\') {
				return "", s.cur.Unexpected()
			}
			c, _ = s.cur.Next()
		}

		if s.opts.MaxStringBytes > 0 && len(buf) >= s.opts.MaxStringBytes {
			return "", &errors.SyntaxError{Kind: errors.KindAllocation, Offset: s.cur.Offset()}
		}
		buf = append(buf, c)
	}

	if err := s.cur.Expect('"'); err != nil {
		return "", err
	}
	return models.String(buf), nil
}

// parseMap reads '{' (pair (',' pair)*)? '}' where pair is string ':' value.
// Nothing built so far survives a failure.
func (s *state) parseMap() (models.Map, error) {
	if !s.cur.Accept('{') {
		return nil, s.cur.Unexpected()
	}
	if s.opts.MaxDepth > 0 && s.depth >= s.opts.MaxDepth {
		return nil, &errors.SyntaxError{Kind: errors.KindDepth, Offset: s.cur.Offset()}
	}
	s.depth++
	defer func() { s.depth-- }()

	if s.cur.Accept('}') {
		return models.Map{}, nil
	}

	pairs := make(models.Map, 0, initialMapCapacity)
	for {
		key, err := s.parseString()
		if err != nil {
			return nil, &errors.SyntaxError{Kind: errors.KindKey, Offset: s.cur.Offset(), Err: err}
		}

		if err := s.cur.Expect(':'); err != nil {
			return nil, err
		}

		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}

		if s.opts.MaxPairs > 0 && len(pairs) >= s.opts.MaxPairs {
			return nil, &errors.SyntaxError{Kind: errors.KindAllocation, Offset: s.cur.Offset()}
		}
		pairs = append(pairs, models.Pair{Key: key, Value: value})

		if !s.cur.Accept(',') {
			break
		}
	}

	if err := s.cur.Expect('}'); err != nil {
		return nil, err
	}
	return pairs, nil
}

// parseInteger reads an optional '-' followed by one or more digits.
func (s *state) parseInteger() (models.Integer, error) {
	negative := s.cur.Accept('-')

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}

	var magnitude uint64
	digits := 0
	for {
		c, ok := s.cur.Peek()
		if !ok || !isDigit(c) {
			break
		}
		d := uint64(c - '0')
		if magnitude > (limit-d)/10 {
			return 0, &errors.SyntaxError{Kind: errors.KindOverflow, Offset: s.cur.Offset()}
		}
		magnitude = magnitude*10 + d
		digits++
		_, _ = s.cur.Next()
	}

	if digits == 0 {
		return 0, s.cur.Unexpected()
	}
	if negative {
		// 1<<63 converts to math.MinInt64 and negates to itself
		return models.Integer(-int64(magnitude)), nil
	}
	return models.Integer(magnitude), nil
}

// expectEnd accepts one optional line terminator (\n or \r\n) and then
// requires end of input.
func (s *state) expectEnd() error {
	if s.cur.Accept('\r') {
		if err := s.cur.Expect('\n'); err != nil {
			return err
		}
	} else {
		s.cur.Accept('\n')
	}
	if s.cur.AtEOF() {
		return nil
	}
	return s.cur.Unexpected()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
