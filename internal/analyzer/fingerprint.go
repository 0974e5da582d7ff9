package analyzer

import (
	"github.com/glaslos/tlsh"
	"github.com/re-centris/cpp2uml/internal/common/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// fingerprint is the TLSH hash of a scanned header
type fingerprint struct {
	path string
	hash *tlsh.TLSH
}

// fingerprints detects headers that are near-identical copies of headers
// already scanned in the same run
type fingerprints struct {
	distance int
	seen     []fingerprint
}

func newFingerprints(distance int) *fingerprints {
	return &fingerprints{distance: distance}
}

// enabled reports whether duplicate detection is on
func (f *fingerprints) enabled() bool {
	return f.distance >= 0
}

// duplicate reports the path of an earlier header within the configured
// distance of data. Headers too small or too uniform to hash are never
// duplicates.
func (f *fingerprints) duplicate(path string, data []byte) (string, bool) {
	if !f.enabled() {
		return "", false
	}

	hash, err := tlsh.HashBytes(data)
	if err != nil {
		logger.Debug("No fingerprint for header",
			zap.String("path", path),
			zap.Error(err))
		return "", false
	}

	for _, prev := range f.seen {
		if d := hash.Diff(prev.hash); d <= f.distance {
			logger.Debug("Header fingerprint match",
				zap.String("path", path),
				zap.String("original", prev.path),
				zap.Int("distance", d))
			return prev.path, true
		}
	}

	if logger.Enabled(zapcore.DebugLevel) {
		logger.Debug("Header fingerprint",
			zap.String("path", path),
			zap.String("tlsh", hash.String()))
	}
	f.seen = append(f.seen, fingerprint{path: path, hash: hash})
	return "", false
}
