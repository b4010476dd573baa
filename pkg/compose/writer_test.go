package compose

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/imagemix/pkg/errors"
)

func TestDirWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out") // does not exist yet
	w := NewDirWriter(dir)

	img := imaging.New(8, 8, red)
	if err := w.Write("creative.png", img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "creative.png"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("decoded size = %v, want 8x8", decoded.Bounds())
	}
}

func TestDirWriterFailure(t *testing.T) {
	// Using a regular file as the output directory forces MkdirAll to fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewDirWriter(filepath.Join(blocker, "out"))
	err := w.Write("creative.png", imaging.New(4, 4, red))
	if !errors.Is(err, errors.ErrCodeWrite) {
		t.Errorf("Write = %v, want WRITE_ERROR", err)
	}
}

func TestMemWriter(t *testing.T) {
	w := NewMemWriter()
	if err := w.Write("a.png", imaging.New(4, 4, blue)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, ok := w.Get("a.png")
	if !ok || len(data) == 0 {
		t.Fatal("stored creative should be retrievable")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
	if _, ok := w.Get("missing.png"); ok {
		t.Error("Get(missing) should report absence")
	}
}
