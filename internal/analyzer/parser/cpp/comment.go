package cpp

import (
	"regexp"
	"strings"
)

var (
	blockStartPattern  = regexp.MustCompile(`^\s*/\*`)
	blockEndPattern    = regexp.MustCompile(`\*/`)
	lineCommentPattern = regexp.MustCompile(`^\s*//`)

	// Complete block spans and trailing line comments inside a code line
	inlineCommentPattern = regexp.MustCompile(`/\*.*?\*/|//.*`)
)

// commentTracker follows block comment regions across lines
type commentTracker struct {
	inBlock bool
}

// skip reports whether line is comment text and must not be scanned
func (t *commentTracker) skip(line string) bool {
	if t.inBlock {
		if blockEndPattern.MatchString(line) {
			t.inBlock = false
		}
		return true
	}

	if blockStartPattern.MatchString(line) {
		start := strings.Index(line, "/*")
		if !strings.Contains(line[start+2:], "*/") {
			t.inBlock = true
		}
		return true
	}

	return lineCommentPattern.MatchString(line)
}

// strip removes inline comments from a code line. An unterminated block
// comment opener at the end of the line starts a block region.
func (t *commentTracker) strip(line string) string {
	line = inlineCommentPattern.ReplaceAllString(line, "")
	if i := strings.Index(line, "/*"); i >= 0 {
		line = line[:i]
		t.inBlock = true
	}
	return line
}
