package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// ErrNotDirectory is returned when a Manager is rooted at something that is
// not an existing directory.
var ErrNotDirectory = errors.New("not a valid directory")

// Manager centralizes which directory is being scanned and how files inside
// it are discovered.
type Manager struct {
	dir string
}

// NewManager constructs a Manager rooted at dir. An empty dir means the
// current working directory.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		dir = "."
	}
	expanded, err := ExpandPath(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	return &Manager{dir: abs}, nil
}

// Dir returns the absolute directory being scanned.
func (m *Manager) Dir() string {
	return m.dir
}

// Path joins name onto the scanned directory.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name)
}

// List returns the base names of regular files directly inside the directory
// whose names match pattern, sorted lexically. Subdirectories are not
// descended into.
func (m *Manager) List(ctx context.Context, pattern string) ([]string, error) {
	if m == nil {
		return nil, errors.New("files.Manager is nil")
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		// Pattern was validated above.
		ok, _ := filepath.Match(pattern, entry.Name())
		if ok {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
