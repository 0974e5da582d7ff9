package uml

import (
	"bytes"
	"io"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestClass_AddRelationship(t *testing.T) {
	tests := []struct {
		kind RelationKind
		want string
	}{
		{kind: Derived, want: "Base <|-- Foo : derived"},
		{kind: Aggregation, want: "Base o-- Foo : aggregation"},
		{kind: Composition, want: "Base *-- Foo : composition"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c := NewClass(" Foo ", "  class Foo {  ")
			rel := c.AddRelationship(tt.kind, " Base ", "  Base base;  ")

			assert.Equal(t, Relationship{Kind: tt.kind, Text: tt.want, Line: "Base base;", Other: "Base"}, rel)
			assert.Equal(t, []Relationship{rel}, c.Relationships)
			assert.Equal(t, "class Foo {", c.Declaration)
		})
	}
}

func TestRegistry_Known(t *testing.T) {
	reg := NewRegistry()

	assert.True(t, reg.AddKnown("Foo"))
	assert.True(t, reg.AddKnown("Bar"))
	assert.False(t, reg.AddKnown("Foo"))

	assert.True(t, reg.IsKnown("Bar"))
	assert.False(t, reg.IsKnown("Baz"))
	assert.False(t, reg.IsKnown("Fo"), "names match exactly")
	assert.Equal(t, []string{"Foo", "Bar"}, reg.KnownNames())

	names := reg.KnownNames()
	names[0] = "changed"
	assert.Equal(t, []string{"Foo", "Bar"}, reg.KnownNames())
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	first := NewClass("Foo", "class Foo {")
	second := NewClass("Foo", "struct Foo {")

	require.NoError(t, reg.Register(first))
	err := reg.Register(second)
	assert.ErrorIs(t, err, ErrDuplicateClass)
	assert.ErrorIs(t, reg.Register(nil), ErrNilClass)

	got, ok := reg.Get("Foo")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, reg.Len())

	_, ok = reg.Get("Bar")
	assert.False(t, ok)
}

func TestRegistry_ClassesOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"C", "A", "B"} {
		require.NoError(t, reg.Register(NewClass(name, "class "+name)))
	}

	var names []string
	for _, c := range reg.Classes() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}

func TestRegistry_KnownRelationships(t *testing.T) {
	reg := NewRegistry()
	reg.AddKnown("Engine")
	reg.AddKnown("Car")

	car := NewClass("Car", "class Car {")
	car.AddRelationship(Aggregation, "Engine", "Engine* engine;")
	car.AddRelationship(Composition, "int", "int speed;")
	car.AddRelationship(Composition, "EngineState", "EngineState state;")
	car.AddRelationship(Derived, "Car", "class Car : public Car")

	var others []string
	for _, rel := range reg.KnownRelationships(car) {
		others = append(others, rel.Other)
	}
	assert.Equal(t, []string{"Engine", "Car"}, others)
	assert.Len(t, car.Relationships, 4)
}

func modelRegistry(t *testing.T) (*Registry, *Class) {
	t.Helper()
	reg := NewRegistry()
	reg.AddKnown("Engine")
	reg.AddKnown("Car")
	require.NoError(t, reg.Register(NewClass("Engine", "class Engine {")))

	car := NewClass("Car", "class Car {")
	car.AddMethod("drive", "void drive();", Public)
	car.AddMember("engine", "Engine* engine;", Private)
	car.AddRelationship(Aggregation, "Engine", "Engine* engine;")
	car.AddMember("speed", "int speed;", Private)
	car.AddRelationship(Composition, "int", "int speed;")
	require.NoError(t, reg.Register(car))
	return reg, car
}

func TestWriteModel(t *testing.T) {
	tests := []struct {
		format Format
		decode func([]byte, any) error
	}{
		{format: FormatYAML, decode: yaml.Unmarshal},
		{format: FormatTOML, decode: toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			reg, car := modelRegistry(t)

			var buf bytes.Buffer
			require.NoError(t, WriteModel(&buf, reg, tt.format))

			var model Model
			require.NoError(t, tt.decode(buf.Bytes(), &model))

			assert.Equal(t, []string{"Engine", "Car"}, model.Known)
			require.Len(t, model.Classes, 2)
			assert.Equal(t, "Engine", model.Classes[0].Name)
			assert.Empty(t, model.Classes[0].Relationships)

			got := model.Classes[1]
			assert.Equal(t, "Car", got.Name)
			assert.Equal(t, "class Car {", got.Declaration)
			assert.Equal(t, car.Methods, got.Methods)
			assert.Equal(t, car.Members, got.Members)
			require.Len(t, got.Relationships, 1)
			assert.Equal(t, "Engine o-- Car : aggregation", got.Relationships[0].Text)
		})
	}
}

func TestWriteModel_UnknownFormat(t *testing.T) {
	err := WriteModel(io.Discard, NewRegistry(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
