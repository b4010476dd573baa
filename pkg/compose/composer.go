package compose

import (
	"context"
	"image"
	"image/color"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/imagemix/pkg/errors"
	"github.com/matzehuels/imagemix/pkg/template"
)

// Composer renders every layout entry of a template into a finished
// creative. All shared state (template, registry, renderer caches, font) is
// read-only after construction, so a single Composer can run concurrent
// batches safely.
type Composer struct {
	tmpl     *template.Template
	registry *template.Registry
	renderer *Renderer
	writer   Writer

	background color.NRGBA
	filter     imaging.ResampleFilter
	workers    int
	logger     *log.Logger
}

// New builds a Composer for the given template. Assets, fonts, and the
// output writer are injected handles, never globals.
func New(tmpl *template.Template, assets Source, fonts *FontSource, writer Writer, opts ...Option) (*Composer, error) {
	registry, err := template.NewRegistry(tmpl.ImageLayers, tmpl.TextLayers)
	if err != nil {
		return nil, err
	}

	c := &Composer{
		tmpl:       tmpl,
		registry:   registry,
		writer:     writer,
		background: DefaultBackground,
		filter:     imaging.Lanczos,
		workers:    runtime.NumCPU(),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = runtime.NumCPU()
	}
	c.renderer = NewRenderer(NewImages(assets), fonts, c.filter)
	return c, nil
}

// EntryResult reports the outcome of one layout entry.
type EntryResult struct {
	OutputFilename string        `json:"output_filename"`
	Err            error         `json:"-"`
	Error          string        `json:"error,omitempty"`
	Code           errors.Code   `json:"code,omitempty"`
	Duration       time.Duration `json:"duration_ms"`
}

// BatchResult reports the outcome of a full batch render.
type BatchResult struct {
	RunID    string        `json:"run_id"`
	Entries  []EntryResult `json:"entries"`
	Rendered int           `json:"rendered"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration_ms"`
}

// RenderEntry composes a single layout entry and returns the finished
// surface. The surface starts as a blank canvas in the configured
// background; layers composite strictly in listed order, so later layers
// may occlude earlier ones. Any layer failure fails the whole entry —
// a half-composed creative is never returned.
func (c *Composer) RenderEntry(ctx context.Context, layout template.Layout) (*image.NRGBA, error) {
	canvas, err := c.tmpl.Canvas(layout.CanvasID)
	if err != nil {
		return nil, err
	}

	surface := imaging.New(canvas.Width, canvas.Height, c.background)
	for _, id := range layout.LayerIDs {
		layer, err := c.registry.Resolve(id)
		if err != nil {
			return nil, err
		}
		surface, err = c.renderer.RenderLayer(ctx, surface, layer)
		if err != nil {
			return nil, err
		}
	}
	return surface, nil
}

// RenderAll renders every layout entry on a bounded worker pool and writes
// each finished creative through the output writer. Entry order is
// insignificant and no completion ordering is guaranteed.
//
// Per-entry failures are recorded in the result set without halting the
// batch. RenderAll itself returns an error only when the whole run cannot
// proceed: context cancellation.
func (c *Composer) RenderAll(ctx context.Context) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{
		RunID:   uuid.NewString(),
		Entries: make([]EntryResult, len(c.tmpl.Layouts)),
	}
	c.logger.Info("starting batch render",
		"run_id", result.RunID,
		"layouts", len(c.tmpl.Layouts),
		"workers", c.workers)

	var g errgroup.Group
	g.SetLimit(c.workers)

	for i, layout := range c.tmpl.Layouts {
		i, layout := i, layout
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Entries[i] = c.renderOne(ctx, layout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, e := range result.Entries {
		if e.Err != nil {
			result.Failed++
		} else {
			result.Rendered++
		}
	}
	result.Duration = time.Since(start)
	c.logger.Info("batch render finished",
		"run_id", result.RunID,
		"rendered", result.Rendered,
		"failed", result.Failed,
		"duration", result.Duration)
	return result, nil
}

// renderOne renders and writes a single entry, capturing its outcome.
func (c *Composer) renderOne(ctx context.Context, layout template.Layout) EntryResult {
	entryStart := time.Now()
	res := EntryResult{OutputFilename: layout.OutputFilename}

	img, err := c.RenderEntry(ctx, layout)
	if err == nil {
		err = c.writer.Write(layout.OutputFilename, img)
	}
	res.Duration = time.Since(entryStart)

	if err != nil {
		res.Err = err
		res.Error = errors.UserMessage(err)
		res.Code = errors.GetCode(err)
		c.logger.Error("entry failed",
			"output", layout.OutputFilename,
			"code", res.Code,
			"err", err)
		return res
	}

	c.logger.Debug("entry rendered",
		"output", layout.OutputFilename,
		"duration", res.Duration)
	return res
}
