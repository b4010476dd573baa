// Package template defines the data model for ImageMix creative templates.
//
// A template consists of four record kinds parsed from four tables:
//   - Canvas: base surface dimensions keyed by canvas_id
//   - ImageLayer: a positioned, resized image element keyed by layer_id
//   - TextLayer: a positioned text element keyed by layer_id
//   - Layout: one output creative binding a canvas to an ordered layer list
//
// Image and text layers share a single identifier space: a layout references
// layers by id only, and the [Registry] resolves each id to exactly one
// record kind. All records are immutable after loading; a loaded *Template
// and its Registry are safe to share across concurrent renders.
//
// Positions use a lower-left origin: (0,0) is the bottom-left corner of the
// canvas with y increasing upward. Conversion to top-left raster coordinates
// happens in the compose package, not here.
package template
