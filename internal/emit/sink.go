package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink hands out one writer per generated program.
type Sink interface {
	Create(id int) (io.WriteCloser, error)
}

// DirSink writes programs to <Dir>/<Prefix><id><Ext>.
type DirSink struct {
	Dir    string
	Prefix string
	Ext    string
}

// Path returns the file name used for program id.
func (s *DirSink) Path(id int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s%d%s", s.Prefix, id, s.Ext))
}

// Create opens the file for program id, creating the directory if needed.
// An existing file is truncated.
func (s *DirSink) Create(id int) (io.WriteCloser, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("emit: failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(s.Path(id))
	if err != nil {
		return nil, fmt.Errorf("emit: failed to create output file: %w", err)
	}
	return f, nil
}
