package template

import (
	"image/color"

	"github.com/matzehuels/imagemix/pkg/errors"
)

// ImageLayer describes an image element stacked onto a canvas. The source
// image is resized to Width×Height and placed with its lower-left corner at
// (X, Y). Positions may be negative or exceed the canvas bounds; pixels
// outside the canvas are clipped during rendering.
type ImageLayer struct {
	ID       string // unique among image layers
	Width    int    // target width after resize, > 0
	Height   int    // target height after resize, > 0
	X        int    // lower-left corner, canvas coordinates
	Y        int    // lower-left corner, canvas coordinates
	Filename string // resolved against the asset source
}

// Validate checks identifier, dimensions, and filename.
func (l ImageLayer) Validate() error {
	if l.ID == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "image layer: layer_id cannot be empty")
	}
	if l.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "image layer %q: width must be positive, got %d", l.ID, l.Width)
	}
	if l.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "image layer %q: height must be positive, got %d", l.ID, l.Height)
	}
	if l.Filename == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "image layer %q: filename cannot be empty", l.ID)
	}
	return nil
}

// TextLayer describes a text element stacked onto a canvas. The text is drawn
// at FontSize in the given RGB color with its lower-left anchor at (X, Y).
// Text never wraps or auto-resizes; overflow is clipped.
type TextLayer struct {
	ID       string // unique among text layers
	FontSize int    // point size, > 0
	ColorR   int    // red channel, [0,255]
	ColorG   int    // green channel, [0,255]
	ColorB   int    // blue channel, [0,255]
	X        int    // lower-left anchor, canvas coordinates
	Y        int    // lower-left anchor, canvas coordinates
	Text     string // literal content, drawn as a single line
}

// Validate checks identifier, font size, color ranges, and content.
// Out-of-range color channels are rejected rather than clamped.
func (l TextLayer) Validate() error {
	if l.ID == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "text layer: layer_id cannot be empty")
	}
	if l.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "text layer %q: font_size must be positive, got %d", l.ID, l.FontSize)
	}
	for _, ch := range []struct {
		name  string
		value int
	}{
		{"color_r", l.ColorR},
		{"color_g", l.ColorG},
		{"color_b", l.ColorB},
	} {
		if ch.value < 0 || ch.value > 255 {
			return errors.New(errors.ErrCodeInvalidTemplate, "text layer %q: %s must be between 0 and 255, got %d", l.ID, ch.name, ch.value)
		}
	}
	if l.Text == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "text layer %q: text_content cannot be empty", l.ID)
	}
	return nil
}

// Color returns the layer's text color at full opacity.
func (l TextLayer) Color() color.NRGBA {
	return color.NRGBA{R: uint8(l.ColorR), G: uint8(l.ColorG), B: uint8(l.ColorB), A: 255}
}

// Layer is a tagged union of the two layer kinds. Exactly one field is
// non-nil; renderers dispatch on which one is set.
type Layer struct {
	Image *ImageLayer
	Text  *TextLayer
}

// ID returns the identifier of whichever layer kind is set.
func (l Layer) ID() string {
	switch {
	case l.Image != nil:
		return l.Image.ID
	case l.Text != nil:
		return l.Text.ID
	}
	return ""
}
