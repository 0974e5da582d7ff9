package uml

import (
	"strings"
)

// Access is the one-character UML visibility symbol of a class item
type Access string

const (
	Public    Access = "+"
	Protected Access = "#"
	Private   Access = "-"
)

// accessOrder is the fixed order visibility groups are rendered in
var accessOrder = []struct {
	access Access
	header string
}{
	{Public, "..Public.."},
	{Protected, "..Protected.."},
	{Private, "..Private.."},
}

// RelationKind classifies a relationship between two classes
type RelationKind string

const (
	Derived     RelationKind = "derived"
	Aggregation RelationKind = "aggregation"
	Composition RelationKind = "composition"
)

// Member represents a data member of a class
type Member struct {
	Name   string `yaml:"name" toml:"name"`
	Line   string `yaml:"line" toml:"line"`
	Access Access `yaml:"access" toml:"access"`
}

// Method represents a method declaration or definition of a class
type Method struct {
	Name   string `yaml:"name" toml:"name"`
	Line   string `yaml:"line" toml:"line"`
	Access Access `yaml:"access" toml:"access"`
}

// Relationship is a directed edge from a class to another class
type Relationship struct {
	Kind  RelationKind `yaml:"kind" toml:"kind"`
	Text  string       `yaml:"text" toml:"text"`
	Line  string       `yaml:"line" toml:"line"`
	Other string       `yaml:"other" toml:"other"`
}

// Class is a parsed class or struct
type Class struct {
	Name          string         `yaml:"name" toml:"name"`
	Declaration   string         `yaml:"declaration" toml:"declaration"`
	Members       []Member       `yaml:"members,omitempty" toml:"members,omitempty"`
	Methods       []Method       `yaml:"methods,omitempty" toml:"methods,omitempty"`
	Relationships []Relationship `yaml:"relationships,omitempty" toml:"relationships,omitempty"`
}

// NewClass creates a class record for the given declaration line
func NewClass(name, declaration string) *Class {
	return &Class{
		Name:        strings.TrimSpace(name),
		Declaration: strings.TrimSpace(declaration),
	}
}

// AddMember appends a data member
func (c *Class) AddMember(name, line string, access Access) {
	c.Members = append(c.Members, Member{
		Name:   strings.TrimSpace(name),
		Line:   strings.TrimSpace(line),
		Access: access,
	})
}

// AddMethod appends a method
func (c *Class) AddMethod(name, line string, access Access) {
	c.Methods = append(c.Methods, Method{
		Name:   strings.TrimSpace(name),
		Line:   strings.TrimSpace(line),
		Access: access,
	})
}

// AddRelationship records a relationship from this class to other.
// The relationship text follows the PlantUML arrow convention for kind.
func (c *Class) AddRelationship(kind RelationKind, other, line string) Relationship {
	other = strings.TrimSpace(other)
	r := Relationship{
		Kind:  kind,
		Text:  relationText(kind, other, c.Name),
		Line:  strings.TrimSpace(line),
		Other: other,
	}
	c.Relationships = append(c.Relationships, r)
	return r
}

func relationText(kind RelationKind, other, this string) string {
	switch kind {
	case Derived:
		return other + " <|-- " + this + " : derived"
	case Aggregation:
		return other + " o-- " + this + " : aggregation"
	default:
		return other + " *-- " + this + " : composition"
	}
}
