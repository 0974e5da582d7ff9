package uml

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of an exported model
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for a model format other than yaml or toml
var ErrUnknownFormat = errors.New("unknown model format")

// Model is the serializable form of a conversion run
type Model struct {
	Known   []string     `yaml:"known" toml:"known"`
	Classes []ModelClass `yaml:"classes" toml:"classes"`
}

// ModelClass is a class together with the relationships that survive
// known-name filtering
type ModelClass struct {
	Name          string         `yaml:"name" toml:"name"`
	Declaration   string         `yaml:"declaration" toml:"declaration"`
	Members       []Member       `yaml:"members,omitempty" toml:"members,omitempty"`
	Methods       []Method       `yaml:"methods,omitempty" toml:"methods,omitempty"`
	Relationships []Relationship `yaml:"relationships,omitempty" toml:"relationships,omitempty"`
}

// NewModel builds the model of a registry
func NewModel(reg *Registry) *Model {
	m := &Model{Known: reg.KnownNames()}
	for _, c := range reg.Classes() {
		m.Classes = append(m.Classes, ModelClass{
			Name:          c.Name,
			Declaration:   c.Declaration,
			Members:       c.Members,
			Methods:       c.Methods,
			Relationships: reg.KnownRelationships(c),
		})
	}
	return m
}

// WriteModel writes the registry in the given format
func WriteModel(w io.Writer, reg *Registry, format Format) error {
	model := NewModel(reg)

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(model); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(model); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
