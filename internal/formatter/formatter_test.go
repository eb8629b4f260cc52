package formatter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mcncl/argo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Values(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		expected string
	}{
		{name: "positive integer", value: models.Integer(42), expected: "42"},
		{name: "negative integer", value: models.Integer(-42), expected: "-42"},
		{name: "empty string", value: models.String(""), expected: `""`},
		{name: "quote and backslash escaped", value: models.String(`a"b\c`), expected: `"a\"b\\c"`},
		{name: "control bytes verbatim", value: models.String("a\nb\x00"), expected: "\"a\nb\x00\""},
		{name: "empty map", value: models.Map{}, expected: "{}"},
		{name: "nil map", value: models.Map(nil), expected: "{}"},
		{
			name: "pairs in insertion order",
			value: models.Map{
				{Key: "z", Value: models.Integer(1)},
				{Key: "a", Value: models.String("x")},
				{Key: "z", Value: models.Map{}},
			},
			expected: `{"z":1,"a":"x","z":{}}`,
		},
		{
			name:     "keys are escaped",
			value:    models.Map{{Key: `k"\`, Value: models.Integer(0)}},
			expected: `{"k\"\\":0}`,
		},
		{name: "nil value", value: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.value))
		})
	}
}

func TestFormat_KeyCase(t *testing.T) {
	value := models.Map{
		{Key: "user_name", Value: models.Map{
			{Key: "FirstName", Value: models.String("keep_value_case")},
		}},
	}

	tests := []struct {
		keyCase  KeyCase
		expected string
	}{
		{keyCase: KeyCaseNone, expected: `{"user_name":{"FirstName":"keep_value_case"}}`},
		{keyCase: KeyCaseSnake, expected: `{"user_name":{"first_name":"keep_value_case"}}`},
		{keyCase: KeyCaseCamel, expected: `{"UserName":{"FirstName":"keep_value_case"}}`},
		{keyCase: KeyCaseLowerCamel, expected: `{"userName":{"firstName":"keep_value_case"}}`},
		{keyCase: KeyCaseKebab, expected: `{"user-name":{"first-name":"keep_value_case"}}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.keyCase), func(t *testing.T) {
			assert.Equal(t, tt.expected, NewFormatterWithKeyCase(tt.keyCase).Format(value))
		})
	}
}

func TestParseKeyCase(t *testing.T) {
	for _, name := range []string{"", "none", "snake", "Camel", " lower_camel ", "kebab"} {
		_, err := ParseKeyCase(name)
		assert.NoError(t, err, "name %q", name)
	}

	kc, err := ParseKeyCase("none")
	require.NoError(t, err)
	assert.Equal(t, KeyCaseNone, kc)

	_, err = ParseKeyCase("screaming")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter().Write(&buf, models.Map{{Key: "a", Value: models.Integer(1)}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWrite_PropagatesError(t *testing.T) {
	err := NewFormatter().Write(failingWriter{}, models.String("x"))
	assert.Error(t, err)
}
