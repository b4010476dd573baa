// Package pkg provides the core libraries for imagemix batch image composition.
//
// # Overview
//
// Imagemix turns a declarative CSV template into a batch of rendered PNG
// creatives. Each layout entry names a canvas and an ordered list of image
// and text layers; the engine composites the layers onto a blank canvas and
// writes the result under the entry's output filename.
//
// The pkg directory is organized into these areas:
//
//  1. [template] - Template data model, CSV loading, and the layer registry
//  2. [compose] - The composition engine (assets, fonts, rendering, output)
//  3. [cache] - Byte caching for downloaded remote assets
//  4. [httputil] - Retry support for remote asset fetches
//  5. [errors] - Structured error codes shared across the engine
//  6. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow through imagemix:
//
//	CSV template directory
//	         ↓
//	    [template] package (load + validate, layer registry)
//	         ↓
//	    [compose] package (fetch assets, resize, composite, draw text)
//	         ↓
//	    PNG creatives (directory or in-memory)
//
// # Quick Start
//
// Load a template and render every layout entry:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/imagemix/pkg/compose"
//	    "github.com/matzehuels/imagemix/pkg/template"
//	)
//
//	tmpl, _ := template.Load("template/")
//	fonts, _ := compose.LoadFont("")
//	writer := compose.NewDirWriter("output/")
//
//	composer, _ := compose.New(tmpl, compose.NewDirSource("template/"), fonts, writer)
//	result, _ := composer.RenderAll(context.Background())
//	fmt.Printf("rendered %d, failed %d\n", result.Rendered, result.Failed)
//
// # Coordinate Convention
//
// Template positions use a lower-left origin: (0,0) is the bottom-left
// corner of the canvas and y grows upward. The engine translates to the
// raster top-left convention when compositing.
//
// [template]: https://pkg.go.dev/github.com/matzehuels/imagemix/pkg/template
// [compose]: https://pkg.go.dev/github.com/matzehuels/imagemix/pkg/compose
// [cache]: https://pkg.go.dev/github.com/matzehuels/imagemix/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/imagemix/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/imagemix/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/imagemix/pkg/buildinfo
package pkg
