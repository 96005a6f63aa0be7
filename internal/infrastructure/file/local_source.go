package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalSource opens import files from disk. Relative paths resolve against BaseDir.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

// Open returns the CSV file at sourcePath. Only .csv files are accepted.
func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(sourcePath), ".csv") {
		return nil, fmt.Errorf("open file %s: %w", sourcePath, ErrNotCSV)
	}

	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return file, nil
}
