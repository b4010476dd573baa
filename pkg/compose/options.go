package compose

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/imagemix/pkg/errors"
)

// DefaultBackground is the canvas fill before any layer is drawn:
// fully transparent white, matching layers that carry alpha cleanly.
var DefaultBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// DefaultFilter is the resampling filter used when resizing image layers.
const DefaultFilter = "lanczos"

// filters maps configuration names to imaging resample filters.
var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ParseFilter resolves a configuration name to a resample filter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[name]
	if !ok {
		return imaging.ResampleFilter{}, errors.New(errors.ErrCodeInvalidTemplate,
			"invalid resample filter %q (must be one of: lanczos, catmullrom, linear, box, nearest)", name)
	}
	return f, nil
}

// Option configures a Composer.
type Option func(*Composer)

// WithBackground sets the blank-canvas fill color.
func WithBackground(c color.NRGBA) Option {
	return func(cp *Composer) { cp.background = c }
}

// WithFilter sets the resample filter for image-layer resizing.
func WithFilter(f imaging.ResampleFilter) Option {
	return func(cp *Composer) { cp.filter = f }
}

// WithWorkers bounds the render worker pool. Values below 1 fall back to
// the number of CPUs.
func WithWorkers(n int) Option {
	return func(cp *Composer) { cp.workers = n }
}

// WithLogger attaches a logger for batch progress. Defaults to a silent one.
func WithLogger(l *log.Logger) Option {
	return func(cp *Composer) { cp.logger = l }
}
