package uml

import (
	"fmt"
)

// Registry holds every class seen during one conversion run.
// Names are recorded when a declaration is found; classes are
// recorded when their body is complete.
type Registry struct {
	known   map[string]struct{}
	names   []string
	classes []*Class
	byName  map[string]*Class
}

// NewRegistry creates an empty class registry
func NewRegistry() *Registry {
	return &Registry{
		known:  make(map[string]struct{}),
		byName: make(map[string]*Class),
	}
}

// AddKnown records a declared class name. It reports false if the
// name was already known.
func (r *Registry) AddKnown(name string) bool {
	if _, ok := r.known[name]; ok {
		return false
	}
	r.known[name] = struct{}{}
	r.names = append(r.names, name)
	return true
}

// IsKnown reports whether name was declared as a class during the run
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.known[name]
	return ok
}

// KnownNames returns the declared class names in discovery order
func (r *Registry) KnownNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Register adds a completed class. The first class with a given name
// wins; later ones are rejected with ErrDuplicateClass.
func (r *Registry) Register(c *Class) error {
	if c == nil {
		return ErrNilClass
	}
	if _, exists := r.byName[c.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
	}
	r.byName[c.Name] = c
	r.classes = append(r.classes, c)
	return nil
}

// Get returns the registered class with the given name
func (r *Registry) Get(name string) (*Class, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Classes returns the registered classes in registration order
func (r *Registry) Classes() []*Class {
	classes := make([]*Class, len(r.classes))
	copy(classes, r.classes)
	return classes
}

// Len returns the number of registered classes
func (r *Registry) Len() int {
	return len(r.classes)
}

// KnownRelationships returns the relationships of c whose other end is
// a known class. Relationships to undeclared types are dropped.
func (r *Registry) KnownRelationships(c *Class) []Relationship {
	var out []Relationship
	for _, rel := range c.Relationships {
		if r.IsKnown(rel.Other) {
			out = append(out, rel)
		}
	}
	return out
}
