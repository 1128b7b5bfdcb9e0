package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"datacraft/domain/core"
	"datacraft/ports"
)

// Storage keeps dataset files in a single directory on local disk.
type Storage struct {
	dir string
	mu  sync.Mutex
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Store writes the upload under its original name, appending " (n)" before
// the extension when the name is already taken.
func (s *Storage) Store(ctx context.Context, r io.Reader, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(s.dir, candidate)); os.IsNotExist(err) {
			break
		}
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}

	f, err := os.Create(filepath.Join(s.dir, candidate))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", candidate, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", candidate, err)
	}
	return candidate, nil
}

// Replace atomically swaps a stored file's content via a temp-and-rename.
func (s *Storage) Replace(ctx context.Context, name string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.Path(name)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return core.NewNotFoundError("file", name)
	}

	tmp, err := os.CreateTemp(s.dir, ".replace-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func (s *Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("file", name)
		}
		return nil, err
	}
	return f, nil
}

func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *Storage) List(ctx context.Context) ([]ports.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read storage dir: %w", err)
	}

	var out []ports.FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, ports.FileInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return core.NewNotFoundError("file", name)
	}
	return err
}

var _ ports.FileStorage = (*Storage)(nil)
