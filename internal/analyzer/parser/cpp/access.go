package cpp

import (
	"strings"

	"github.com/re-centris/cpp2uml/internal/uml"
)

// accessTracker holds the access level of the class body being scanned.
// Members before any label are public for both class and struct.
type accessTracker struct {
	current uml.Access
}

func newAccessTracker() *accessTracker {
	return &accessTracker{current: uml.Public}
}

// update applies an access label found on line and returns the current level
func (t *accessTracker) update(line string) uml.Access {
	switch {
	case strings.Contains(line, "public:"):
		t.current = uml.Public
	case strings.Contains(line, "protected:"):
		t.current = uml.Protected
	case strings.Contains(line, "private:"):
		t.current = uml.Private
	}
	return t.current
}
