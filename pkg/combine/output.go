// File: pkg/combine/output.go
package combine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/minio/highwayhash"
	"go.uber.org/zap"
)

var fingerprintKey = []byte("cppmerge-output-fingerprint-key!")

// Fingerprint returns the highwayhash-64 of data.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// WriteOutput writes data to path unless the file already holds content with
// the same fingerprint. It reports whether the file was written.
func WriteOutput(path string, data []byte, force bool, logger *zap.Logger) (bool, uint64, error) {
	sum, err := Fingerprint(data)
	if err != nil {
		return false, 0, fmt.Errorf("failed to fingerprint output: %w", err)
	}

	if !force {
		existing, err := os.ReadFile(path)
		switch {
		case err == nil:
			if existingSum, err := Fingerprint(existing); err == nil && existingSum == sum {
				logger.Debug("Output unchanged", zap.String("path", path), zap.Uint64("fingerprint", sum))
				return false, sum, nil
			}
		case !errors.Is(err, fs.ErrNotExist):
			logger.Warn("Failed to read existing output", zap.String("path", path), zap.Error(err))
		}
	}

	if err := ensureDirectory(filepath.Dir(path), logger); err != nil {
		return false, sum, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeToFile(path, data, 0644, logger); err != nil {
		return false, sum, fmt.Errorf("failed to write output: %w", err)
	}
	return true, sum, nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
