package parser

import (
	"bufio"
	"io"

	stderrors "errors"
	"github.com/mcncl/argo/internal/errors"
)

// Cursor gives one byte of lookahead over a stream.
type Cursor struct {
	r      *bufio.Reader
	offset int64
	err    error // first non-EOF read error, sticky
}

// NewCursor wraps r. An existing *bufio.Reader is used as is.
func NewCursor(r io.Reader) *Cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Cursor{r: br}
}

// Peek returns the next byte without consuming it. ok is false at end of
// stream or after a read error.
func (c *Cursor) Peek() (b byte, ok bool) {
	if c.err != nil {
		return 0, false
	}
	buf, err := c.r.Peek(1)
	if len(buf) == 0 {
		if err != nil && !stderrors.Is(err, io.EOF) {
			c.err = err
		}
		return 0, false
	}
	return buf[0], true
}

// Next consumes and returns the next byte.
func (c *Cursor) Next() (byte, bool) {
	b, ok := c.Peek()
	if !ok {
		return 0, false
	}
	_, _ = c.r.ReadByte()
	c.offset++
	return b, true
}

// Accept consumes b if it is the next byte.
func (c *Cursor) Accept(b byte) bool {
	if next, ok := c.Peek(); ok && next == b {
		_, _ = c.Next()
		return true
	}
	return false
}

// Expect consumes b or returns an error describing the lookahead.
func (c *Cursor) Expect(b byte) error {
	if c.Accept(b) {
		return nil
	}
	return c.Unexpected()
}

// Unexpected reports the current lookahead as an unexpected token, or as
// unexpected end of input. A pending read error takes precedence.
func (c *Cursor) Unexpected() error {
	next, ok := c.Peek()
	if c.err != nil {
		return &errors.SyntaxError{Kind: errors.KindIO, Offset: c.offset, EOF: true, Err: c.err}
	}
	return errors.Unexpected(c.offset, next, !ok)
}

// Offset returns the number of bytes consumed so far
func (c *Cursor) Offset() int64 {
	return c.offset
}

// AtEOF reports whether the stream is exhausted
func (c *Cursor) AtEOF() bool {
	_, ok := c.Peek()
	return !ok && c.err == nil
}
