package patterns

import (
	"fmt"
	"regexp"

	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// DefaultMaxInputLen caps the length of text accepted by Analyze. Scanning
// is bounded-time over in-memory input, but capping the input keeps a bad
// collaborator from feeding megabytes of concatenated drawing text through
// every pattern in the catalog.
const DefaultMaxInputLen = 64 << 10

// CompileError reports an invalid regular expression in a catalog,
// naming the offending category and pattern.
type CompileError struct {
	Catalog  string
	Category string
	Pattern  string
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile pattern %s/%s.%s: %v", e.Catalog, e.Category, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// InputTooLargeError reports scan input exceeding the configured cap.
type InputTooLargeError struct {
	Length int
	Limit  int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("input of %d bytes exceeds scan limit of %d", e.Length, e.Limit)
}

type compiledPattern struct {
	name string
	re   *regexp.Regexp
}

type compiledCategory struct {
	name     string
	patterns []compiledPattern
}

// Analyzer scans text against every pattern of a compiled catalog.
// Compile once, share freely: an Analyzer is immutable after construction
// apart from SetMaxInputLen, and Analyze is safe for concurrent use once
// configuration is done.
type Analyzer struct {
	catalog     string
	categories  []compiledCategory
	maxInputLen int
}

// Compile parses every pattern of the catalog once, case-insensitively.
// It fails fast on the first invalid expression with a *CompileError.
func Compile(catalog Catalog) (*Analyzer, error) {
	a := &Analyzer{
		catalog:     catalog.Name,
		categories:  make([]compiledCategory, 0, len(catalog.Categories)),
		maxInputLen: DefaultMaxInputLen,
	}
	for _, cat := range catalog.Categories {
		cc := compiledCategory{
			name:     cat.Name,
			patterns: make([]compiledPattern, 0, len(cat.Patterns)),
		}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(`(?i)` + p.Expr)
			if err != nil {
				return nil, &CompileError{
					Catalog:  catalog.Name,
					Category: cat.Name,
					Pattern:  p.Name,
					Err:      err,
				}
			}
			cc.patterns = append(cc.patterns, compiledPattern{name: p.Name, re: re})
		}
		a.categories = append(a.categories, cc)
	}
	return a, nil
}

// SetMaxInputLen overrides the input length cap. Call before sharing the
// analyzer across goroutines.
func (a *Analyzer) SetMaxInputLen(n int) {
	if n > 0 {
		a.maxInputLen = n
	}
}

// Analyze scans text against every compiled pattern across every category.
// Results follow catalog declaration order; every pattern that matches
// contributes one result, so multiple categories can report hits on the
// same text. Confidence is fixed at 1.0 for a regex match; fuzzy scoring
// is a separate capability (BestMatch).
func (a *Analyzer) Analyze(text string) ([]models.MatchResult, error) {
	if len(text) > a.maxInputLen {
		return nil, &InputTooLargeError{Length: len(text), Limit: a.maxInputLen}
	}

	var results []models.MatchResult
	for _, cat := range a.categories {
		for _, p := range cat.patterns {
			m := p.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			var groups []string
			if len(m) > 1 {
				groups = m[1:]
			}
			results = append(results, models.MatchResult{
				Matched:     true,
				Value:       m[0],
				Confidence:  1.0,
				PatternType: cat.name + "." + p.name,
				Groups:      groups,
			})
		}
	}
	return results, nil
}

// CategoryNames returns the catalog's category names in declaration order.
func (a *Analyzer) CategoryNames() []string {
	names := make([]string, len(a.categories))
	for i, cat := range a.categories {
		names[i] = cat.name
	}
	return names
}

// Find returns the first match of a single named pattern against text,
// with its capture groups, or ok=false when the pattern is absent from
// the catalog or does not match.
func (a *Analyzer) Find(category, pattern, text string) (value string, groups []string, ok bool) {
	for _, cat := range a.categories {
		if cat.name != category {
			continue
		}
		for _, p := range cat.patterns {
			if p.name != pattern {
				continue
			}
			m := p.re.FindStringSubmatch(text)
			if m == nil {
				return "", nil, false
			}
			if len(m) > 1 {
				groups = m[1:]
			}
			return m[0], groups, true
		}
	}
	return "", nil, false
}
