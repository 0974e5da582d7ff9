package cpp

import (
	"testing"

	"github.com/re-centris/cpp2uml/internal/uml"
	"github.com/stretchr/testify/assert"
)

func TestAccessTracker(t *testing.T) {
	tracker := newAccessTracker()
	assert.Equal(t, uml.Public, tracker.current)

	steps := []struct {
		line string
		want uml.Access
	}{
		{"  int a;", uml.Public},
		{"protected:", uml.Protected},
		{"  void f();", uml.Protected},
		{"private:", uml.Private},
		{"class Foo : public Bar", uml.Private},
		{"public: int d;", uml.Public},
	}

	for _, step := range steps {
		assert.Equal(t, step.want, tracker.update(step.line), step.line)
	}
}
