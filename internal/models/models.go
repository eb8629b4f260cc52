package models

import "strconv"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindMap Kind = iota
	KindInteger
	KindString
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a parsed document: a Map, an Integer or a String.
// The set of implementations is closed.
type Value interface {
	Kind() Kind
	isValue()
}

// Pair is a single key/value entry inside a Map.
type Pair struct {
	Key   String
	Value Value
}

// Map is an ordered sequence of pairs. Keys are not required to be unique;
// duplicates are kept in the order they were read.
type Map []Pair

// Integer is a signed decimal integer.
type Integer int64

// String holds raw bytes with an explicit length. It may contain any byte,
// including NUL and control characters.
type String string

func (Map) Kind() Kind     { return KindMap }
func (Integer) Kind() Kind { return KindInteger }
func (String) Kind() Kind  { return KindString }

func (Map) isValue()     {}
func (Integer) isValue() {}
func (String) isValue()  {}

// Len returns the number of pairs in the map
func (m Map) Len() int {
	return len(m)
}

// Get returns the value of the first pair whose key equals key
func (m Map) Get(key string) (Value, bool) {
	for _, p := range m {
		if string(p.Key) == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GetAll returns every value stored under key, in insertion order
func (m Map) GetAll(key string) []Value {
	var values []Value
	for _, p := range m {
		if string(p.Key) == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Keys returns the keys of the map in insertion order, duplicates included
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, p := range m {
		keys[i] = string(p.Key)
	}
	return keys
}
