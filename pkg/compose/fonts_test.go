package compose

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/imagemix/pkg/errors"
)

func TestLoadFontDefault(t *testing.T) {
	fonts, err := LoadFont("")
	if err != nil {
		t.Fatalf("LoadFont(\"\"): %v", err)
	}
	face := fonts.Face(24)
	if face == nil {
		t.Fatal("Face returned nil")
	}
	if face.Metrics().Height <= 0 {
		t.Error("face metrics should report a positive line height")
	}
}

func TestLoadFontFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	fonts, err := LoadFont(path)
	if err != nil {
		t.Fatalf("LoadFont(%s): %v", path, err)
	}
	if fonts.Face(12) == nil {
		t.Error("Face returned nil")
	}
}

func TestLoadFontNotFound(t *testing.T) {
	_, err := LoadFont("definitely-not-a-real-font-name-xyz")
	if !errors.Is(err, errors.ErrCodeFontLoad) {
		t.Errorf("LoadFont(bogus) = %v, want FONT_LOAD_ERROR", err)
	}
}

func TestNewFontSourceBadData(t *testing.T) {
	_, err := NewFontSource([]byte("not a font"))
	if !errors.Is(err, errors.ErrCodeFontLoad) {
		t.Errorf("NewFontSource(garbage) = %v, want FONT_LOAD_ERROR", err)
	}
}

func TestFaceSizesAreIndependent(t *testing.T) {
	fonts, err := LoadFont("")
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}

	small := fonts.Face(10).Metrics().Height
	large := fonts.Face(40).Metrics().Height
	if large <= small {
		t.Errorf("40pt line height (%v) should exceed 10pt (%v)", large, small)
	}
}
