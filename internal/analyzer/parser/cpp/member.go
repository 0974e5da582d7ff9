package cpp

import (
	"regexp"
	"strings"

	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/uml"
	"go.uber.org/zap"
)

// memberRule is one alternative of the member heuristic. name is the
// capture group holding the member name; trimBrace drops the brace
// initializer from the recorded line.
type memberRule struct {
	pattern   *regexp.Regexp
	name      int
	trimBrace bool
}

var memberRules = []memberRule{
	// int x;  Bar *b = nullptr;  bool flag{false};
	{pattern: regexp.MustCompile(`^([^(=][^=]*)[\s*&](\w+)\s*(?:=[^;]*|\{[^;]*\})?\s*;`), name: 2},
	// Config config {
	{pattern: regexp.MustCompile(`^[^(].*\s([A-Za-z_]+)\s*\{+`), name: 1, trimBrace: true},
	// char buf[64];
	{pattern: regexp.MustCompile(`^([^(=][^=]*)[\s*&](\w+)\s*(?:\[[^\]]*\]\s*)+(?:=[^;]*)?;`), name: 2},
}

var (
	braceTailPattern = regexp.MustCompile(`\{.*`)

	// Declarations that end in ';' but introduce no data
	nonMemberPrefixes = []string{"friend ", "using ", "typedef "}
)

// matchMember reports the member name and recorded line if line declares
// a data member
func matchMember(line string) (name, entire string, ok bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range nonMemberPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return "", "", false
		}
	}

	for _, rule := range memberRules {
		m := rule.pattern.FindStringSubmatch(line)
		if m == nil || m[rule.name] == "" {
			continue
		}
		name, entire = m[rule.name], line
		if rule.trimBrace {
			entire = braceTailPattern.ReplaceAllString(entire, "")
		}
		break
	}
	if name == "" {
		return "", "", false
	}

	// Deleted or defaulted special members look like fields:
	// Devices(Devices&&) = default;
	if !strings.Contains(entire, "signal") && strings.Contains(entire, "(") {
		return "", "", false
	}

	return strings.TrimSpace(name), entire, true
}

// checkMember records a data member declared on line and classifies its
// relationship to other classes
func checkMember(line string, access uml.Access, c *uml.Class) bool {
	name, entire, ok := matchMember(line)
	if !ok {
		return false
	}

	logger.Debug("New class member",
		zap.String("class", c.Name),
		zap.String("member", name),
		zap.String("line", line))

	c.AddMember(name, entire, access)
	checkMemberRelation(line, c)
	return true
}
