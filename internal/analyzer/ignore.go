package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/re-centris/cpp2uml/internal/common/logger"
	"go.uber.org/zap"
)

// ignoreMatcher applies the .gitignore files found under a root directory
type ignoreMatcher struct {
	root    string
	matcher gitignore.Matcher
}

// newIgnoreMatcher loads every .gitignore below root. Unreadable ignore
// files are logged and ignore nothing.
func newIgnoreMatcher(root string) *ignoreMatcher {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		logger.Warn("Failed to read .gitignore patterns",
			zap.String("root", root),
			zap.Error(err))
		patterns = nil
	}

	logger.Debug("Loaded .gitignore patterns",
		zap.String("root", root),
		zap.Int("patterns", len(patterns)))

	return &ignoreMatcher{
		root:    root,
		matcher: gitignore.NewMatcher(patterns),
	}
}

// ignored reports whether path is excluded by the ignore rules
func (m *ignoreMatcher) ignored(path string, isDir bool) bool {
	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return m.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}
