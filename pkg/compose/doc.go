// Package compose implements the ImageMix composition engine.
//
// The engine turns a validated template into rendered creatives through
// three cooperating pieces:
//
//  1. Asset and font sources supply decoded images and font faces. Sources
//     are injected into the composer, never global, so tests and concurrent
//     runs can use independent fixtures.
//  2. The Renderer draws one resolved layer (image or text) onto a canvas
//     surface, translating the template's lower-left-origin coordinates to
//     the raster's top-left convention and clipping silently.
//  3. The Composer drives the batch: one blank canvas per layout entry,
//     layers composited strictly in listed order, finished surfaces handed
//     to an output writer. Entries render independently on a bounded worker
//     pool; a failed entry is reported in the batch result without halting
//     the rest.
//
// Rendering is deterministic: the same template and assets always produce
// byte-identical output.
package compose
