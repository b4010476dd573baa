package compose

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/imagemix/pkg/errors"
)

// Writer persists finished creatives under their declared filenames.
// The composer does not know or care about the storage medium.
// Implementations must be safe for concurrent use; distinct entries always
// write distinct filenames.
type Writer interface {
	Write(name string, img image.Image) error
}

// DirWriter writes PNG-encoded creatives into an output directory,
// creating the directory on first use.
type DirWriter struct {
	dir  string
	once sync.Once
	err  error
}

// NewDirWriter creates a directory-backed writer.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{dir: dir}
}

// Write encodes img as PNG and stores it under name inside the output
// directory. Any I/O failure is a WRITE_ERROR.
func (w *DirWriter) Write(name string, img image.Image) error {
	w.once.Do(func() {
		w.err = os.MkdirAll(w.dir, 0o755)
	})
	if w.err != nil {
		return errors.Wrap(errors.ErrCodeWrite, w.err, "create output directory %s", w.dir)
	}

	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "create %s", path)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "close %s", path)
	}
	return nil
}

// MemWriter collects PNG-encoded creatives in memory, keyed by filename.
// Used by tests and the HTTP surface.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemWriter creates an empty in-memory writer.
func NewMemWriter() *MemWriter {
	return &MemWriter{files: make(map[string][]byte)}
}

// Write encodes img as PNG and stores it under name.
func (w *MemWriter) Write(name string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "encode %s", name)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[name] = buf.Bytes()
	return nil
}

// Get returns the encoded bytes stored under name.
func (w *MemWriter) Get(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[name]
	return data, ok
}

// Len returns the number of stored creatives.
func (w *MemWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}
