package cpp

import (
	"regexp"
	"strings"

	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/uml"
	"go.uber.org/zap"
)

var (
	// class D : public B
	derivedPattern = regexp.MustCompile(`:\s*(?:virtual\s+)?(public|private|protected)\s+(?:virtual\s+)?([\w:<>]+)`)

	// , protected C  (further bases after the first one)
	nextBasePattern = regexp.MustCompile(`,\s*(?:virtual\s+)?(public|private|protected)\s+(?:virtual\s+)?([\w:<>]+)`)

	aggregationPatterns = []*regexp.Regexp{
		// std::unique_ptr<T> / std::shared_ptr<T>
		regexp.MustCompile(`(?:unique_ptr|shared_ptr)<\s*([\w:]+)`),
		// T* t;  const T* const t;
		regexp.MustCompile(`^\s*(?:(?:const|static|mutable|volatile|constexpr|inline)\s+)*([\w:]+).*\*`),
	}

	compositionPattern = regexp.MustCompile(`^\s*([\w:]+)`)
)

const signalToken = "signal<"

// checkDerived records an inheritance relationship for every base class
// named on line
func checkDerived(line string, c *uml.Class) []uml.Relationship {
	loc := derivedPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}

	bases := []string{line[loc[4]:loc[5]]}
	for _, m := range nextBasePattern.FindAllStringSubmatch(line[loc[1]:], -1) {
		bases = append(bases, m[2])
	}

	rels := make([]uml.Relationship, 0, len(bases))
	for _, base := range bases {
		rel := c.AddRelationship(uml.Derived, base, line)
		logRelationship(rel)
		rels = append(rels, rel)
	}
	return rels
}

// checkMemberRelation classifies the type of a member line as aggregation
// or, failing that, composition. Signal members are never classified.
func checkMemberRelation(line string, c *uml.Class) (uml.Relationship, bool) {
	if strings.Contains(line, signalToken) {
		logger.Debug("Skipping signal member", zap.String("line", line))
		return uml.Relationship{}, false
	}

	for _, p := range aggregationPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			rel := c.AddRelationship(uml.Aggregation, m[1], line)
			logRelationship(rel)
			return rel, true
		}
	}

	if m := compositionPattern.FindStringSubmatch(line); m != nil {
		rel := c.AddRelationship(uml.Composition, m[1], line)
		logRelationship(rel)
		return rel, true
	}

	return uml.Relationship{}, false
}

func logRelationship(rel uml.Relationship) {
	logger.Debug("New relationship",
		zap.String("kind", string(rel.Kind)),
		zap.String("uml", rel.Text),
		zap.String("line", rel.Line))
}
