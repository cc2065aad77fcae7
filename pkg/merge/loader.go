// File: pkg/merge/loader.go
package merge

import (
	"context"

	"github.com/viant/afs"
	"go.uber.org/zap"
)

// Loader reads the content of an include target. ok is false when the target
// cannot be used as a source file; the include is then dropped.
type Loader interface {
	Load(path string) (content string, ok bool)
}

// FileLoader loads include targets through an afs.Service.
type FileLoader struct {
	fs     afs.Service
	logger *zap.Logger
}

// NewFileLoader creates a FileLoader. A nil service defaults to afs.New().
func NewFileLoader(fs afs.Service, logger *zap.Logger) *FileLoader {
	if fs == nil {
		fs = afs.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLoader{fs: fs, logger: logger}
}

// Load reads path. Missing files, directories, unreadable files and binary
// files are reported as not ok.
func (l *FileLoader) Load(path string) (string, bool) {
	ctx := context.Background()

	exists, err := l.fs.Exists(ctx, path)
	if err != nil || !exists {
		l.logger.Debug("Include target does not exist", zap.String("path", path), zap.Error(err))
		return "", false
	}

	object, err := l.fs.Object(ctx, path)
	if err != nil {
		l.logger.Debug("Failed to stat include target", zap.String("path", path), zap.Error(err))
		return "", false
	}
	if object.IsDir() {
		l.logger.Debug("Include target is a directory", zap.String("path", path))
		return "", false
	}

	data, err := l.fs.DownloadWithURL(ctx, path)
	if err != nil {
		l.logger.Debug("Failed to read include target", zap.String("path", path), zap.Error(err))
		return "", false
	}

	if isBinaryContent(data) {
		l.logger.Debug("Include target looks binary", zap.String("path", path))
		return "", false
	}

	l.logger.Debug("Loaded include target", zap.String("path", path), zap.Int("sizeBytes", len(data)))
	return string(data), true
}
