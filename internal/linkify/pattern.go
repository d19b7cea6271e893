package linkify

import (
	"regexp"
	"strings"
)

// A regex to recognize substrings that are probably URLs or file paths.
// Broken down into named fragments for readability.
const (
	prefix           = `(https?://)?/?` // http://, https:// or / or nothing. Group 1 is the scheme.
	optionalPort     = `(?::\d+)?`
	relPathComponent = `[\w.-]+` // One or more alphanumeric, underscore, dash or dot.
	absPathComponent = `/` + relPathComponent

	// We require at least two path components, and the last character must be a
	// word character: some tools print an ellipsis after file names, and no real
	// file ends in a dot in practice.
	pathPattern = prefix + relPathComponent + optionalPort +
		`(?:` + absPathComponent + `)+` +
		`(?::` + relPathComponent + `)?` + // For /foo/bar:target.
		`\w`
)

var pathRE = regexp.MustCompile(pathPattern)

// Tools can print many, many .'s in a row while downloading large artifacts.
// Candidates beginning with a run of this many dots are never linked; the scan
// skips to the first offset of the run with fewer dots remaining. RE2 scanning
// is linear-time, so together these keep pathological dot-run inputs cheap.
const longDotChain = 5

// Match is one recognized URL-or-path candidate within the scanned text.
type Match struct {
	// Text is the exact matched substring.
	Text string
	// Start and End are byte offsets into the scanned string, with
	// Text == s[Start:End].
	Start int
	End   int
	// HasScheme reports whether the http(s) scheme group participated.
	HasScheme bool
}

// FindMatches scans s and returns every candidate reference, left to right and
// non-overlapping. It never fails; unmatched input is simply not represented.
func FindMatches(s string) []Match {
	var matches []Match
	pos := 0
	for pos < len(s) {
		loc := pathRE.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		text := s[start:end]
		if n := leadingDots(text); n >= longDotChain {
			// Resume where fewer than longDotChain dots remain in the run.
			pos = start + n - (longDotChain - 1)
			continue
		}
		matches = append(matches, Match{
			Text:      text,
			Start:     start,
			End:       end,
			HasScheme: loc[2] >= 0,
		})
		pos = end
	}
	return matches
}

func leadingDots(s string) int {
	return len(s) - len(strings.TrimLeft(s, "."))
}
