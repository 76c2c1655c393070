package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
)

// FileAdapter keeps the inventory in a comma-separated text file. The file
// is opened and closed by every call and never held between them.
type FileAdapter struct {
	path   string
	logger *zap.Logger
}

func NewFileAdapter(path string, logger *zap.Logger) *FileAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileAdapter{path: path, logger: logger}
}

func (f *FileAdapter) Path() string {
	return f.path
}

func (f *FileAdapter) Load(ctx context.Context) ([]domain.Shoe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileMissing, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	defer file.Close()

	shoes, err := readShoes(file)
	f.logger.Debug("read inventory file", zap.String("path", f.path), zap.Int("records", len(shoes)))
	return shoes, err
}

// Append writes one line at the end of the file, creating it with a header
// when it does not exist yet.
func (f *FileAdapter) Append(ctx context.Context, shoe domain.Shoe) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}

	writer := csv.NewWriter(file)
	switch {
	case info.Size() == 0:
		if err := writer.Write(domain.Header); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
		}
	default:
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, info.Size()-1); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
		}
		if last[0] != '\n' {
			if _, err := file.Write([]byte("\n")); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
			}
		}
	}

	if err := writer.Write(shoe.Fields()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	return nil
}

// Save rewrites the file through a temp file in the same directory so a
// failed write never leaves a truncated inventory behind.
func (f *FileAdapter) Save(ctx context.Context, shoes []domain.Shoe) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}

	temp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	defer os.Remove(temp.Name())

	if err := writeShoes(temp, shoes); err != nil {
		temp.Close()
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	if err := temp.Chmod(0o644); err != nil {
		temp.Close()
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	if err := os.Rename(temp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}

	f.logger.Debug("rewrote inventory file", zap.String("path", f.path), zap.Int("records", len(shoes)))
	return nil
}
