package pathalg

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"

	"github.com/joshuapare/regpath/pkg/types"
)

// globSep joins segments for doublestar, which only understands '/'.
// A '/' inside a key name is swapped for slashRune first, a private-use
// code point that never appears in registry names.
const (
	globSep   = "/"
	slashRune = "\uE000"
)

// globText folds segs and joins them with globSep.
func globText(segs ...string) string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = strings.ReplaceAll(s, globSep, slashRune)
	}
	return cases.Fold().String(strings.Join(out, globSep))
}

// Match reports whether a matches pattern, case-insensitively. A relative
// pattern matches segment by segment from the right; an anchored pattern
// must name the same root and match every segment.
func (a Address) Match(pattern string) (bool, error) {
	pat, err := Parse(pattern)
	if err != nil {
		return false, err
	}
	if pat.Drive != "" {
		if !foldEqual(pat.Drive, a.Drive) || len(pat.Segments) != len(a.Segments) {
			return false, nil
		}
	} else if len(pat.Segments) > len(a.Segments) {
		return false, nil
	}

	off := len(a.Segments) - len(pat.Segments)
	for i, p := range pat.Segments {
		ok, err := doublestar.Match(globText(p), globText(a.Segments[off+i]))
		if err != nil {
			return false, types.Wrap(types.ErrKindInvalidAddress, err, "bad pattern %q", pattern)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Glob is a compiled relative key pattern: `*`, `?`, `[...]` within one
// segment and `**` across any number of segments.
type Glob struct {
	pattern   string
	depth     int
	recursive bool
}

// CompileGlob validates a relative pattern.
func CompileGlob(pattern string) (Glob, error) {
	pat, err := Parse(pattern)
	if err != nil {
		return Glob{}, err
	}
	if pat.Drive != "" {
		return Glob{}, types.Errorf(types.ErrKindInvalidAddress, "glob pattern %q must be relative", pattern)
	}
	joined := globText(pat.Segments...)
	if !doublestar.ValidatePattern(joined) {
		return Glob{}, types.Errorf(types.ErrKindInvalidAddress, "bad glob pattern %q", pattern)
	}
	return Glob{
		pattern:   joined,
		depth:     len(pat.Segments),
		recursive: slices.Contains(pat.Segments, "**"),
	}, nil
}

// MaxDepth is how many levels below the base a match can sit, or -1 when
// the pattern contains `**`.
func (g Glob) MaxDepth() int {
	if g.recursive {
		return -1
	}
	return g.depth
}

// MatchSegments matches the segments of a path relative to the glob base.
func (g Glob) MatchSegments(rel []string) bool {
	ok, err := doublestar.Match(g.pattern, globText(rel...))
	return err == nil && ok
}

// String returns the normalized pattern.
func (g Glob) String() string {
	return strings.ReplaceAll(strings.ReplaceAll(g.pattern, globSep, Sep), slashRune, globSep)
}
