package uml

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const indent = "    "

// MethodText returns the rendered signature of a method line: the text
// before the first ';', with a dangling '(' shown as '(...)'.
func MethodText(line string) string {
	text := cutStatement(line)
	if strings.HasSuffix(text, "(") {
		text += "...)"
	}
	return text
}

// FieldText returns the rendered text of a member line
func FieldText(line string) string {
	return cutStatement(line)
}

func cutStatement(line string) string {
	if i := strings.Index(line, ";"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Writer serializes classes to PlantUML class-diagram markup
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a diagram writer on top of w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) line(s string) {
	w.w.WriteString(s)
	w.w.WriteByte('\n')
}

// WriteHeader writes the diagram start marker
func (w *Writer) WriteHeader() {
	w.line("@startuml")
}

// WriteFooter writes the diagram end marker
func (w *Writer) WriteFooter() {
	w.line("@enduml")
}

// WriteClass writes one class block
func (w *Writer) WriteClass(c *Class) {
	w.line("class " + c.Name)
	w.line("{")

	if len(c.Methods) > 0 {
		w.line("..Methods..")
		for _, group := range accessOrder {
			first := true
			for _, m := range c.Methods {
				if m.Access != group.access {
					continue
				}
				if first {
					w.groupHeader(group.header)
					first = false
				}
				w.line(fmt.Sprintf("%s{method}%s %s", indent, m.Access, MethodText(m.Line)))
			}
		}
	}

	if len(c.Members) > 0 {
		w.line("")
		w.line("..Fields..")
		for _, group := range accessOrder {
			first := true
			for _, m := range c.Members {
				if m.Access != group.access {
					continue
				}
				if first {
					w.groupHeader(group.header)
					first = false
				}
				w.line(fmt.Sprintf("%s{field}%s %s", indent, m.Access, FieldText(m.Line)))
			}
		}
	}

	w.line("}")
	w.line("")
}

func (w *Writer) groupHeader(header string) {
	w.line("")
	w.line(header)
	w.line("")
}

// WriteRelationships writes the relationships of every registered class
// whose other end is a known class. Each non-empty group is followed by
// a blank line.
func (w *Writer) WriteRelationships(reg *Registry) {
	for _, c := range reg.Classes() {
		rels := reg.KnownRelationships(c)
		for _, rel := range rels {
			w.line(rel.Text)
		}
		if len(rels) > 0 {
			w.line("")
		}
	}
}

// WriteDiagram writes a complete diagram of the registry
func (w *Writer) WriteDiagram(reg *Registry, relations bool) error {
	w.WriteHeader()
	for _, c := range reg.Classes() {
		w.WriteClass(c)
	}
	if relations {
		w.WriteRelationships(reg)
	}
	w.WriteFooter()
	return w.Flush()
}

// Flush writes any buffered data to the underlying writer
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}

// Render returns the markup of a single class block
func Render(c *Class) string {
	var sb strings.Builder
	w := NewWriter(&sb)
	w.WriteClass(c)
	w.Flush()
	return sb.String()
}
