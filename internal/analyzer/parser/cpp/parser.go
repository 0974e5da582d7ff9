package cpp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/uml"
	"go.uber.org/zap"
)

var (
	classStartPatterns = []*regexp.Regexp{
		// class Foo : public Bar {
		regexp.MustCompile(`^\s*(?:class|struct)\s+(\w+)[^;{=]*\{`),
		// class Foo : public Bar      (brace on the next line)
		regexp.MustCompile(`^\s*(?:class|struct)\s+(\w+)\s+[\w:\s,<>]+$`),
	}

	// class Foo  (accepted unless the line is a forward declaration)
	classSimplePattern = regexp.MustCompile(`^\s*(?:class|struct)\s+(\w+)`)

	classEndPattern = regexp.MustCompile(`^\s*};`)

	// struct Empty {};  struct Point { int x; int y; };
	oneLineBodyPattern = regexp.MustCompile(`\{[^{}]*\}\s*;\s*$`)

	// access label leading a statement of a one-line body
	accessLabelPattern = regexp.MustCompile(`^\s*(?:public|protected|private):`)
)

// DefaultExtensions are the header extensions scanned in directory mode
var DefaultExtensions = []string{".h", ".hpp"}

// Scanner turns header lines into class records. Classes are registered
// in the registry as soon as their body ends.
type Scanner struct {
	reg      *uml.Registry
	comments commentTracker

	// class being built, nil outside a class body
	active  *uml.Class
	access  *accessTracker
	methods methodScanner

	lineNum int
	found   int
}

// NewScanner creates a scanner that records classes in reg
func NewScanner(reg *uml.Registry) *Scanner {
	return &Scanner{reg: reg}
}

// InClass reports whether the scanner is inside a class body
func (s *Scanner) InClass() bool {
	return s.active != nil
}

// Found returns the number of classes completed by this scanner
func (s *Scanner) Found() int {
	return s.found
}

// ProcessLine advances the scanner by one source line
func (s *Scanner) ProcessLine(line string) {
	s.lineNum++
	line = strings.TrimRight(line, "\r\n")

	if s.comments.skip(line) {
		logger.Debug("Skipping comment", zap.Int("line", s.lineNum))
		return
	}
	line = s.comments.strip(line)

	if s.active == nil {
		s.findClass(line)
		return
	}
	s.scanBody(line)
}

// findClass looks for a class declaration outside of any class body
func (s *Scanner) findClass(line string) {
	var name string
	for _, p := range classStartPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			name = m[1]
			break
		}
	}

	if name == "" {
		m := classSimplePattern.FindStringSubmatch(line)
		if m == nil {
			return
		}
		if strings.HasSuffix(strings.TrimSpace(line), ";") {
			logger.Debug("Skipping forward declaration", zap.String("line", line))
			return
		}
		name = m[1]
	}

	s.beginClass(name, line)

	if i := strings.Index(line, "{"); i >= 0 && oneLineBodyPattern.MatchString(line[i:]) {
		s.scanOneLineBody(line[i+1 : strings.LastIndex(line, "}")])
		s.endClass()
	}
}

// scanOneLineBody scans each statement of a body declared on the class
// line itself. The body holds no braces.
func (s *Scanner) scanOneLineBody(body string) {
	for _, stmt := range strings.Split(body, ";") {
		if loc := accessLabelPattern.FindStringIndex(stmt); loc != nil {
			s.access.update(stmt[:loc[1]])
			stmt = stmt[loc[1]:]
		}
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		s.scanBody(stmt + ";")
	}
}

func (s *Scanner) beginClass(name, line string) {
	logger.Debug("Found new class",
		zap.String("class", name),
		zap.Int("line", s.lineNum))

	s.active = uml.NewClass(name, line)
	s.access = newAccessTracker()
	s.methods.reset()

	checkDerived(line, s.active)
	s.reg.AddKnown(s.active.Name)
}

func (s *Scanner) endClass() {
	c := s.active
	s.active = nil
	s.methods.reset()
	s.found++

	if err := s.reg.Register(c); err != nil {
		logger.Warn("Class not registered",
			zap.String("class", c.Name),
			zap.Int("line", s.lineNum),
			zap.Error(err))
		return
	}

	logger.Debug("Class completed",
		zap.String("class", c.Name),
		zap.Int("methods", len(c.Methods)),
		zap.Int("members", len(c.Members)),
		zap.Int("relationships", len(c.Relationships)))
}

// scanBody routes a class body line through the classifiers
func (s *Scanner) scanBody(line string) {
	// The class end wins even over an unbalanced method body
	if classEndPattern.MatchString(line) {
		s.endClass()
		return
	}

	if s.methods.inBody() {
		s.methods.process(line, s.access.current, s.active)
		return
	}

	access := s.access.update(line)

	if s.methods.process(line, access, s.active) {
		logger.Debug("Method line",
			zap.String("class", s.active.Name),
			zap.Stringer("state", s.methods.state))
		return
	}

	checkMember(line, access, s.active)
	checkDerived(line, s.active)
}

// Finish ends the input. A class whose body never closed is dropped.
func (s *Scanner) Finish() {
	if s.active != nil {
		logger.Debug("Dropping unterminated class",
			zap.String("class", s.active.Name))
		s.active = nil
	}
	s.methods.reset()
	s.comments = commentTracker{}
}

// Scan reads every line of r
func (s *Scanner) Scan(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		s.ProcessLine(scanner.Text())
	}
	s.Finish()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error scanning C/C++ code: %w", err)
	}
	return nil
}

// CPPParser implements the parser.Parser interface for C/C++ headers
type CPPParser struct {
	extensions []string
}

// New creates a new C/C++ header parser. Without extensions the
// DefaultExtensions are used.
func New(extensions ...string) *CPPParser {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make([]string, len(extensions))
	for i, e := range extensions {
		exts[i] = strings.ToLower(e)
	}
	return &CPPParser{extensions: exts}
}

// GetLanguage returns the language name
func (p *CPPParser) GetLanguage() string {
	return "cpp"
}

// GetExtensions returns supported file extensions
func (p *CPPParser) GetExtensions() []string {
	return p.extensions
}

// Parse scans C/C++ header text and records its classes in reg.
// It returns the number of classes completed.
func (p *CPPParser) Parse(reader io.Reader, reg *uml.Registry) (int, error) {
	s := NewScanner(reg)
	if err := s.Scan(reader); err != nil {
		return s.Found(), err
	}
	return s.Found(), nil
}
