package cpp

import (
	"testing"

	"github.com/re-centris/cpp2uml/internal/uml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchMethod(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{line: "  void run();", want: "run", ok: true},
		{line: "  virtual ~Widget();", want: "~Widget", ok: true},
		{line: "  explicit Widget(QWidget *parent = nullptr);", want: "Widget", ok: true},
		{line: "  static std::shared_ptr<Foo> create(const std::string& name);", want: "create", ok: true},
		{line: "  std::map<int, std::string> lookup() const;", want: "lookup", ok: true},
		{line: "  Foo *make(int n);", want: "make", ok: true},
		{line: "  int count;", ok: false},
		{line: "  Bar* bar = new Bar();", ok: false},
		{line: "    if(ready) {", ok: false},
		{line: "  std::function<void(int)> callback;", ok: false},
		{line: "run();", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, ok := matchMethod(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestMethodScanner(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		consumed []bool
		methods  []string
		final    methodState
	}{
		{
			name:     "declaration",
			lines:    []string{"  void run();"},
			consumed: []bool{true},
			methods:  []string{"run"},
			final:    methodIdle,
		},
		{
			name:     "inline one-line body",
			lines:    []string{"  void run() { doWork(); }", "  int x;"},
			consumed: []bool{true, false},
			methods:  []string{"run"},
			final:    methodIdle,
		},
		{
			name: "body on following lines",
			lines: []string{
				"  void run()",
				"  {",
				"      int local = 0;",
				"      if (local) {",
				"          local++;",
				"      }",
				"  }",
				"  int x;",
			},
			consumed: []bool{true, true, true, true, true, true, true, false},
			methods:  []string{"run"},
			final:    methodIdle,
		},
		{
			name:     "multi-line declaration",
			lines:    []string{"  void configure(int a,", "                 int b);", "  int x;"},
			consumed: []bool{true, true, false},
			methods:  []string{"configure"},
			final:    methodIdle,
		},
		{
			name:     "initializer list",
			lines:    []string{"  Foo(int x)", "      : x_(x)", "  {", "  }"},
			consumed: []bool{true, true, true, true},
			methods:  []string{"Foo"},
			final:    methodIdle,
		},
		{
			name:     "braces in literals",
			lines:    []string{"  void log() {", `      print("}");`, "  }"},
			consumed: []bool{true, true, true},
			methods:  []string{"log"},
			final:    methodIdle,
		},
		{
			name:     "open body",
			lines:    []string{"  void run() {", "      step();"},
			consumed: []bool{true, true},
			methods:  []string{"run"},
			final:    methodBody,
		},
		{
			name:     "not a method",
			lines:    []string{"  int x;"},
			consumed: []bool{false},
			final:    methodIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s methodScanner
			c := uml.NewClass("Foo", "class Foo {")
			for i, line := range tt.lines {
				assert.Equal(t, tt.consumed[i], s.process(line, uml.Public, c), "line %d: %q", i, line)
			}

			var names []string
			for _, m := range c.Methods {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.methods, names)
			assert.Equal(t, tt.final, s.state)
			assert.Empty(t, c.Members)
		})
	}
}

func TestMethodScanner_Access(t *testing.T) {
	var s methodScanner
	c := uml.NewClass("Foo", "class Foo {")

	s.process("  void a();", uml.Public, c)
	s.process("  void b();", uml.Protected, c)
	s.process("  void c();", uml.Private, c)

	require.Len(t, c.Methods, 3)
	assert.Equal(t, uml.Public, c.Methods[0].Access)
	assert.Equal(t, uml.Protected, c.Methods[1].Access)
	assert.Equal(t, uml.Private, c.Methods[2].Access)
}
