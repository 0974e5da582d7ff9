package cpp

import (
	"regexp"
	"strings"

	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/uml"
	"go.uber.org/zap"
)

var (
	// <return and qualifier tokens> name(
	methodStartPattern = regexp.MustCompile(`[\w\s*&:<>,]+[\s*&]([~\w]+)\(`)

	// ends a signature that spans several lines without a body
	declarationEndPattern = regexp.MustCompile(`;\s*$`)

	// string and character literals, ignored when counting braces
	literalPattern = regexp.MustCompile(`"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`)

	// call-like keywords that the signature pattern would otherwise accept
	statementKeywords = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true, "return": true,
		"sizeof": true, "decltype": true, "alignof": true, "static_assert": true,
	}
)

type methodState int

const (
	methodIdle methodState = iota
	methodSignature
	methodBody
)

func (s methodState) String() string {
	switch s {
	case methodSignature:
		return "signature"
	case methodBody:
		return "body"
	default:
		return "idle"
	}
}

// methodScanner recognizes method signatures and swallows method bodies
// so their statements are never read as members
type methodScanner struct {
	state methodState
	depth int
}

// braces returns the number of opening braces on line and the change in
// nesting depth
func braces(line string) (opens, delta int) {
	code := literalPattern.ReplaceAllString(line, "")
	opens = strings.Count(code, "{")
	return opens, opens - strings.Count(code, "}")
}

// inBody reports whether a method body is open
func (s *methodScanner) inBody() bool {
	return s.state == methodBody
}

// process feeds a class body line to the scanner. It reports whether the
// line belonged to a method.
func (s *methodScanner) process(line string, access uml.Access, c *uml.Class) bool {
	switch s.state {
	case methodBody:
		_, delta := braces(line)
		s.depth += delta
		if s.depth <= 0 {
			s.reset()
		}
		return true

	case methodSignature:
		if opens, delta := braces(line); opens > 0 {
			s.open(delta)
		} else if declarationEndPattern.MatchString(line) {
			s.reset()
		}
		return true
	}

	name, ok := matchMethod(line)
	if !ok {
		return false
	}

	logger.Debug("New method",
		zap.String("class", c.Name),
		zap.String("method", name),
		zap.String("access", string(access)))

	c.AddMethod(name, line, access)

	if opens, delta := braces(line); opens > 0 {
		s.open(delta)
	} else if !strings.Contains(line, ";") {
		s.state = methodSignature
	}
	return true
}

// matchMethod reports the method name if line starts a method signature.
// Calls on the right of an assignment are not signatures:
// Bar* bar = new Bar();
func matchMethod(line string) (string, bool) {
	loc := methodStartPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", false
	}
	name := line[loc[2]:loc[3]]
	if statementKeywords[name] || strings.Contains(line[:loc[2]], "=") {
		return "", false
	}
	return name, true
}

// open enters a method body with the given nesting depth. A body that is
// already balanced is complete.
func (s *methodScanner) open(depth int) {
	if depth <= 0 {
		s.reset()
		return
	}
	s.state = methodBody
	s.depth = depth
}

func (s *methodScanner) reset() {
	s.state = methodIdle
	s.depth = 0
}
