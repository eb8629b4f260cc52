package analyzer

import (
	"fmt"
	"strings"

	"github.com/mcncl/argo/internal/models"
)

// DuplicateKey records a key that appears more than once in the same map.
type DuplicateKey struct {
	// Path is the chain of keys leading to the map, joined with '.'; empty for the root
	Path  string
	Key   string
	Count int
}

// Stats summarizes the shape of a value tree
type Stats struct {
	Maps          int
	Integers      int
	Strings       int
	Pairs         int
	MaxDepth      int
	LongestString int
	Duplicates    []DuplicateKey
}

// Analyzer walks value trees and collects Stats
type Analyzer struct {
	stats Stats
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks v and returns its statistics. A nil value yields zero Stats.
func (a *Analyzer) Analyze(v models.Value) Stats {
	a.stats = Stats{}
	a.walk(v, nil, 0)
	return a.stats
}

func (a *Analyzer) walk(v models.Value, path []string, depth int) {
	switch val := v.(type) {
	case models.Integer:
		a.stats.Integers++
	case models.String:
		a.stats.Strings++
		if len(val) > a.stats.LongestString {
			a.stats.LongestString = len(val)
		}
	case models.Map:
		a.stats.Maps++
		depth++
		if depth > a.stats.MaxDepth {
			a.stats.MaxDepth = depth
		}
		a.stats.Pairs += len(val)

		// Record duplicates in first-seen order
		seen := make(map[string]int, len(val))
		var order []string
		for _, p := range val {
			key := string(p.Key)
			if seen[key] == 1 {
				order = append(order, key)
			}
			seen[key]++
		}
		for _, key := range order {
			a.stats.Duplicates = append(a.stats.Duplicates, DuplicateKey{
				Path:  strings.Join(path, "."),
				Key:   key,
				Count: seen[key],
			})
		}

		for _, p := range val {
			a.walk(p.Value, append(path, string(p.Key)), depth)
		}
	}
}

// Summary renders stats as a single human-readable line
func (s Stats) Summary() string {
	return fmt.Sprintf("maps=%d integers=%d strings=%d pairs=%d depth=%d duplicates=%d",
		s.Maps, s.Integers, s.Strings, s.Pairs, s.MaxDepth, len(s.Duplicates))
}
