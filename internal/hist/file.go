package hist

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanun0323/errors"
)

// FileSink appends one comma separated line per row into
// <dir>/<service>.txt, opening each output lazily on first use.
type FileSink struct {
	dir     string
	files   map[string]*os.File
	writers map[string]*bufio.Writer
}

// NewFileSink creates the output directory if missing.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output dir %s", dir)
	}
	return &FileSink{
		dir:     dir,
		files:   make(map[string]*os.File),
		writers: make(map[string]*bufio.Writer),
	}, nil
}

func (s *FileSink) Persist(service, key string, fields []string) error {
	w, err := s.writer(service)
	if err != nil {
		return err
	}
	if _, err := w.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
		return errors.Wrapf(err, "write %s row", service)
	}
	return nil
}

// Close flushes and closes every open output file.
func (s *FileSink) Close() error {
	var firstErr error
	for service, w := range s.writers {
		if err := w.Flush(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "flush %s", service)
		}
	}
	for service, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "close %s", service)
		}
	}
	s.writers = make(map[string]*bufio.Writer)
	s.files = make(map[string]*os.File)
	return firstErr
}

func (s *FileSink) writer(service string) (*bufio.Writer, error) {
	if w, ok := s.writers[service]; ok {
		return w, nil
	}
	path := filepath.Join(s.dir, strings.ToLower(service)+".txt")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	s.files[service] = f
	s.writers[service] = bufio.NewWriter(f)
	return s.writers[service], nil
}
