package compose

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/imagemix/pkg/errors"
	"github.com/matzehuels/imagemix/pkg/template"
)

// Renderer draws resolved layers onto canvas surfaces. It holds only shared
// read-only state (decoded-image cache, parsed font, resample filter) and is
// safe for concurrent use by multiple entry renders.
type Renderer struct {
	images *Images
	fonts  *FontSource
	filter imaging.ResampleFilter
}

// NewRenderer creates a layer renderer.
func NewRenderer(images *Images, fonts *FontSource, filter imaging.ResampleFilter) *Renderer {
	return &Renderer{images: images, fonts: fonts, filter: filter}
}

// RenderLayer composites one layer onto dst and returns the updated surface.
// Layer positions use the template's lower-left origin; this is where they
// are translated to the raster's top-left addressing. Pixels outside the
// surface are clipped silently.
func (r *Renderer) RenderLayer(ctx context.Context, dst *image.NRGBA, layer template.Layer) (*image.NRGBA, error) {
	switch {
	case layer.Image != nil:
		return r.renderImage(ctx, dst, *layer.Image)
	case layer.Text != nil:
		return r.renderText(dst, *layer.Text), nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "empty layer variant")
}

// renderImage loads the source image, stretches it to the declared size, and
// alpha-composites it over dst. Source transparency is preserved; this is
// plain draw-on-top, not a blend mode.
func (r *Renderer) renderImage(ctx context.Context, dst *image.NRGBA, layer template.ImageLayer) (*image.NRGBA, error) {
	src, err := r.images.Load(ctx, layer.Filename)
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(src, layer.Width, layer.Height, r.filter)

	// Lower-left corner (X, Y) → top-left raster position.
	pos := image.Pt(layer.X, dst.Bounds().Dy()-layer.Y-layer.Height)
	return imaging.Overlay(dst, resized, pos, 1.0), nil
}

// renderText draws the layer's text at full opacity with its lower-left
// anchor at (X, Y). The anchor maps to the baseline origin of the string in
// raster coordinates. Text never wraps; overflow is clipped by the surface.
func (r *Renderer) renderText(dst *image.NRGBA, layer template.TextLayer) *image.NRGBA {
	dc := gg.NewContextForImage(dst)
	dc.SetFontFace(r.fonts.Face(float64(layer.FontSize)))
	dc.SetColor(layer.Color())
	dc.DrawString(layer.Text, float64(layer.X), float64(dst.Bounds().Dy()-layer.Y))
	return imaging.Clone(dc.Image())
}
