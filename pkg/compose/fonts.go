package compose

import (
	"os"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/imagemix/pkg/errors"
)

// FontSource provides font faces at arbitrary sizes from a single parsed
// TrueType font. The parsed font is read-only and safe to share; the faces
// it produces are not, so each render creates its own faces via [FontSource.Face].
type FontSource struct {
	font *truetype.Font
}

// LoadFont resolves and parses the run-wide font resource.
//
// Resolution order:
//   - empty spec: the embedded Go Regular face
//   - an existing file path: read directly
//   - anything else: system font lookup by name (e.g. "DejaVuSans.ttf")
//
// All failures are FONT_LOAD_ERROR and fatal for the run, since no text
// layer could render correctly without the font.
func LoadFont(spec string) (*FontSource, error) {
	if spec == "" {
		return NewFontSource(goregular.TTF)
	}

	path := spec
	if _, err := os.Stat(path); err != nil {
		found, ferr := findfont.Find(spec)
		if ferr != nil {
			return nil, errors.Wrap(errors.ErrCodeFontLoad, ferr, "font %q not found", spec)
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", path)
	}
	return NewFontSource(data)
}

// NewFontSource parses raw TrueType data.
func NewFontSource(data []byte) (*FontSource, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font")
	}
	return &FontSource{font: f}, nil
}

// Face creates a new face at the given point size. The returned face must
// not be shared between goroutines.
func (s *FontSource) Face(size float64) font.Face {
	return truetype.NewFace(s.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
