// Package filter implements the two predicates gating a generate run: a
// path filter deciding which modules are scanned at all, and a directive
// filter deciding which directives within a scanned module execute.
//
// Both filters are immutable after construction; every pattern is validated
// up front so a malformed glob or regex fails before any module is touched.
package filter

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// InvalidPatternError reports a malformed glob or regular expression in the
// filter configuration.
type InvalidPatternError struct {
	Kind    string // "include", "ignore", "run" or "skip"
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Kind, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// PathFilter decides which module paths participate in a scan based on
// include and ignore glob sets.
type PathFilter struct {
	include []string
	ignore  []string
}

// NewPathFilter validates every pattern and returns the filter. Patterns are
// doublestar-compatible globs.
func NewPathFilter(include, ignore []string) (*PathFilter, error) {
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return nil, &InvalidPatternError{Kind: "include", Pattern: p, Err: doublestar.ErrBadPattern}
		}
	}
	for _, p := range ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, &InvalidPatternError{Kind: "ignore", Pattern: p, Err: doublestar.ErrBadPattern}
		}
	}
	return &PathFilter{
		include: append([]string(nil), include...),
		ignore:  append([]string(nil), ignore...),
	}, nil
}

// Match reports whether p survives the ignore set and, when the include set
// is non-empty, matches at least one include pattern. An empty include set
// accepts everything not ignored.
func (f *PathFilter) Match(p string) bool {
	for _, pattern := range f.ignore {
		if matchGlob(pattern, p) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if matchGlob(pattern, p) {
			return true
		}
	}
	return false
}

// matchGlob matches one pattern against one path. A pattern without a path
// separator applies to the base name, the way gitignore-style tools behave;
// a pattern containing a separator applies to the slash-normalized full path.
func matchGlob(pattern, p string) bool {
	target := filepath.ToSlash(p)
	if !strings.ContainsRune(pattern, '/') {
		target = path.Base(target)
	}
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}

// DirectiveFilter decides which directives within a module execute, based on
// optional run and skip regular expressions matched against the directive's
// original comment text.
type DirectiveFilter struct {
	run  *regexp.Regexp
	skip *regexp.Regexp
}

// NewDirectiveFilter compiles the optional run and skip expressions. An
// empty string disables the corresponding test.
func NewDirectiveFilter(run, skip string) (*DirectiveFilter, error) {
	f := &DirectiveFilter{}
	if run != "" {
		re, err := regexp.Compile(run)
		if err != nil {
			return nil, &InvalidPatternError{Kind: "run", Pattern: run, Err: err}
		}
		f.run = re
	}
	if skip != "" {
		re, err := regexp.Compile(skip)
		if err != nil {
			return nil, &InvalidPatternError{Kind: "skip", Pattern: skip, Err: err}
		}
		f.skip = re
	}
	return f, nil
}

// Match reports whether original passes the run test and is not caught by
// the skip test. With both expressions absent every directive is accepted.
func (f *DirectiveFilter) Match(original string) bool {
	if f.run != nil && !f.run.MatchString(original) {
		return false
	}
	if f.skip != nil && f.skip.MatchString(original) {
		return false
	}
	return true
}
