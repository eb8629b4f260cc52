package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/argo/internal/models"
)

// KeyCase selects how map keys are rewritten on output
type KeyCase string

const (
	KeyCaseNone       KeyCase = ""
	KeyCaseSnake      KeyCase = "snake"
	KeyCaseCamel      KeyCase = "camel"
	KeyCaseLowerCamel KeyCase = "lower_camel"
	KeyCaseKebab      KeyCase = "kebab"
)

// ParseKeyCase validates a key case name
func ParseKeyCase(name string) (KeyCase, error) {
	switch kc := KeyCase(strings.ToLower(strings.TrimSpace(name))); kc {
	case KeyCaseNone, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
		return kc, nil
	case "none":
		return KeyCaseNone, nil
	default:
		return KeyCaseNone, fmt.Errorf("unknown key case %q", name)
	}
}

// Formatter renders value trees as canonical text
type Formatter struct {
	keyCase KeyCase
}

// NewFormatter creates a Formatter producing the canonical form.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// NewFormatterWithKeyCase creates a Formatter that rewrites every map key.
// The output is no longer canonical unless keyCase is KeyCaseNone.
func NewFormatterWithKeyCase(keyCase KeyCase) *Formatter {
	return &Formatter{keyCase: keyCase}
}

// Format returns the text form of v, without a trailing newline
func (f *Formatter) Format(v models.Value) string {
	var sb strings.Builder
	f.writeValue(&sb, v)
	return sb.String()
}

// Write renders v to w
func (f *Formatter) Write(w io.Writer, v models.Value) error {
	bw := bufio.NewWriter(w)
	f.writeValue(bw, v)
	return bw.Flush()
}

// Format renders v in canonical form
func Format(v models.Value) string {
	return NewFormatter().Format(v)
}

type byteWriter interface {
	io.ByteWriter
	io.StringWriter
}

func (f *Formatter) writeValue(w byteWriter, v models.Value) {
	switch val := v.(type) {
	case models.Integer:
		_, _ = w.WriteString(strconv.FormatInt(int64(val), 10))
	case models.String:
		writeString(w, string(val))
	case models.Map:
		_ = w.WriteByte('{')
		for i, p := range val {
			if i != 0 {
				_ = w.WriteByte(',')
			}
			writeString(w, f.rewriteKey(string(p.Key)))
			_ = w.WriteByte(':')
			f.writeValue(w, p.Value)
		}
		_ = w.WriteByte('}')
	case nil:
		// a failed parse hands back nil; there is nothing to render
	}
}

// writeString quotes s, escaping only '"' and '\'
func writeString(w byteWriter, s string) {
	_ = w.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			_ = w.WriteByte('\\')
		}
		_ = w.WriteByte(c)
	}
	_ = w.WriteByte('"')
}

func (f *Formatter) rewriteKey(key string) string {
	switch f.keyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}
