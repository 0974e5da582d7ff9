package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/re-centris/cpp2uml/internal/analyzer/parser"
	"github.com/re-centris/cpp2uml/internal/analyzer/parser/cpp"
	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/common/monitor"
	"github.com/re-centris/cpp2uml/internal/uml"
	"go.uber.org/zap"
)

const (
	fileSuffix = "_class.pu"
	dirSuffix  = "_class_diagram_all.pu"
)

// AnalyzerOptions contains options for the analyzer
type AnalyzerOptions struct {
	// Extensions selects the headers scanned in directory mode
	Extensions []string

	// OutputDir overrides where diagrams are written
	OutputDir string

	// Relations adds relationships to single-file diagrams.
	// Directory diagrams always include them.
	Relations bool

	RespectGitignore bool

	// DedupeDistance enables skipping near-identical headers when >= 0
	DedupeDistance int
}

// Result describes one conversion run
type Result struct {
	Path     string
	Output   string
	IsDir    bool
	Registry *uml.Registry

	// Files counts the headers scanned; Skipped the ignored or duplicate
	// ones; Failed the unreadable ones
	Files   int
	Skipped int
	Failed  int

	Stats monitor.Stats
	mon   *monitor.Monitor
}

// Analyzer converts header files and directories to class diagrams
type Analyzer struct {
	opts    AnalyzerOptions
	parsers *parser.Registry
}

// New creates a new Analyzer
func New(opts AnalyzerOptions) *Analyzer {
	if len(opts.Extensions) == 0 {
		opts.Extensions = cpp.DefaultExtensions
	}

	parsers := parser.NewRegistry()
	parsers.Register(cpp.New(opts.Extensions...))

	return &Analyzer{opts: opts, parsers: parsers}
}

// OutputPath returns the diagram path for an input file or directory
func (a *Analyzer) OutputPath(path string, isDir bool) string {
	if isDir {
		name := filepath.Base(filepath.Clean(path))
		if abs, err := filepath.Abs(path); err == nil {
			name = filepath.Base(abs)
		}
		return filepath.Join(a.opts.OutputDir, name+dirSuffix)
	}

	if a.opts.OutputDir != "" {
		return filepath.Join(a.opts.OutputDir, filepath.Base(path)+fileSuffix)
	}
	return path + fileSuffix
}

// Scan parses a header file or every header under a directory into a
// new registry
func (a *Analyzer) Scan(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	res := &Result{
		Path:     path,
		IsDir:    info.IsDir(),
		Registry: uml.NewRegistry(),
		mon:      monitor.New(),
	}

	switch {
	case info.IsDir():
		err = a.analyzeDirectory(ctx, path, res)
	case info.Mode().IsRegular():
		_, err = a.AnalyzeFile(ctx, path, res.Registry)
		res.Files = 1
		res.mon.AddFile(int(info.Size()))
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, err
	}

	res.Stats = res.mon.Stop()
	return res, nil
}

// Convert scans path and writes its diagram
func (a *Analyzer) Convert(ctx context.Context, path string) (*Result, error) {
	res, err := a.Scan(ctx, path)
	if err != nil {
		return nil, err
	}

	res.Output = a.OutputPath(path, res.IsDir)
	relations := res.IsDir || a.opts.Relations
	if err := writeDiagram(res.Output, res.Registry, relations); err != nil {
		return nil, err
	}

	logger.Info("Diagram written",
		zap.String("input", path),
		zap.String("output", res.Output),
		zap.Int("classes", res.Registry.Len()))

	return res, nil
}

func writeDiagram(path string, reg *uml.Registry, relations bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create diagram: %w", err)
	}

	if err := uml.NewWriter(file).WriteDiagram(reg, relations); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// AnalyzeFile parses a single file into reg and returns the number of
// classes found
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, reg *uml.Registry) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}
	return a.parse(path, content, reg)
}

func (a *Analyzer) parse(path string, content []byte, reg *uml.Registry) (int, error) {
	p, ok := a.parsers.GetByExtension(strings.ToLower(filepath.Ext(path)))
	if !ok {
		// Explicitly named files are scanned whatever their extension
		if p, ok = a.parsers.Get("cpp"); !ok {
			return 0, ErrNoParser
		}
	}

	logger.Debug("Processing file", zap.String("path", path))

	n, err := p.Parse(bytes.NewReader(content), reg)
	if err != nil {
		return n, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return n, nil
}

// isHeader reports whether path has one of the configured extensions
func (a *Analyzer) isHeader(path string) bool {
	_, ok := a.parsers.GetByExtension(strings.ToLower(filepath.Ext(path)))
	return ok
}

// analyzeDirectory parses every header below dir into res.Registry.
// Unreadable files are logged and skipped.
func (a *Analyzer) analyzeDirectory(ctx context.Context, dir string, res *Result) error {
	var ignore *ignoreMatcher
	if a.opts.RespectGitignore {
		ignore = newIgnoreMatcher(dir)
	}
	prints := newFingerprints(a.opts.DedupeDistance)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Error("Failed to access path",
				zap.String("path", path),
				zap.Error(err))
			res.Failed++
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && (info.Name() == ".git" || (ignore != nil && ignore.ignored(path, true))) {
				return filepath.SkipDir
			}
			return nil
		}

		if !a.isHeader(path) {
			return nil
		}
		if ignore != nil && ignore.ignored(path, false) {
			logger.Debug("Skipping ignored header", zap.String("path", path))
			res.Skipped++
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Failed to read header",
				zap.String("path", path),
				zap.Error(err))
			res.Failed++
			return nil
		}

		if original, dup := prints.duplicate(path, content); dup {
			logger.Info("Skipping duplicate header",
				zap.String("path", path),
				zap.String("original", original))
			res.Skipped++
			return nil
		}

		logger.Info("Processing file", zap.String("path", path))
		n, err := a.parse(path, content, res.Registry)
		if err != nil {
			logger.Error("Failed to analyze file",
				zap.String("path", path),
				zap.Error(err))
			res.Failed++
			return nil
		}
		res.Files++
		res.mon.AddFile(len(content))

		logger.Debug("File analyzed",
			zap.String("path", path),
			zap.Int("classes", n))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	return nil
}
