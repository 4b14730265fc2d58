package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// previousDir holds the artifacts a commit replaces until it succeeds.
const previousDir = ".previous"

var errNotRegular = errors.New("destination exists and is not a regular file")

// Stage collects a run's files in a hidden directory under root.
type Stage struct {
	root  string
	dir   string
	files []string
}

func NewStage(root string) (*Stage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	dir, err := os.MkdirTemp(root, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Stage{root: root, dir: dir}, nil
}

// Path registers file for promotion and returns its staging path.
func (s *Stage) Path(file string) string {
	s.files = append(s.files, file)
	return filepath.Join(s.dir, file)
}

// Commit replaces the artifacts in root with the staged ones. Either every
// staged file ends up in root, or root is left exactly as it was.
func (s *Stage) Commit() error {
	for _, f := range s.files {
		dst := filepath.Join(s.root, f)
		if info, err := os.Lstat(dst); err == nil && !info.Mode().IsRegular() {
			s.Discard()
			return &WriteError{Entity: f, Path: dst, Err: errNotRegular}
		}
	}

	backup := filepath.Join(s.dir, previousDir)
	if err := os.Mkdir(backup, 0755); err != nil {
		s.Discard()
		return &WriteError{Entity: "staging", Path: backup, Err: err}
	}

	var moved, promoted []string
	rollback := func() {
		for _, f := range promoted {
			os.Remove(filepath.Join(s.root, f))
		}
		for _, f := range moved {
			os.Rename(filepath.Join(backup, f), filepath.Join(s.root, f))
		}
		s.Discard()
	}

	// Set the previous run aside first, so a failure below can restore it.
	for _, f := range s.files {
		dst := filepath.Join(s.root, f)
		if _, err := os.Lstat(dst); err != nil {
			continue
		}
		if err := os.Rename(dst, filepath.Join(backup, f)); err != nil {
			rollback()
			return &WriteError{Entity: f, Path: dst, Err: err}
		}
		moved = append(moved, f)
	}

	for _, f := range s.files {
		dst := filepath.Join(s.root, f)
		if err := os.Rename(filepath.Join(s.dir, f), dst); err != nil {
			rollback()
			return &WriteError{Entity: f, Path: dst, Err: err}
		}
		promoted = append(promoted, f)
	}
	return os.RemoveAll(s.dir)
}

// Discard drops everything staged so far.
func (s *Stage) Discard() {
	os.RemoveAll(s.dir)
}
