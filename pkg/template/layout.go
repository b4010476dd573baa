package template

import "github.com/matzehuels/imagemix/pkg/errors"

// MaxLayers is the maximum number of layer references per layout entry,
// matching the layer_1..layer_30 columns of the layout table.
const MaxLayers = 30

// Layout binds one canvas to an ordered layer list and an output filename.
// Layers composite strictly in listed order: the first id is the backmost,
// later layers draw on top. Empty slots in the source table are skipped
// during loading, so LayerIDs holds only non-empty references.
type Layout struct {
	OutputFilename string   // filename for the rendered creative
	CanvasID       string   // references a Canvas by id
	LayerIDs       []string // ordered layer references, back to front
}

// Validate checks the output filename, canvas reference, and layer count.
func (l Layout) Validate() error {
	if l.OutputFilename == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "layout: output_filename cannot be empty")
	}
	if l.CanvasID == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "layout %q: canvas_id cannot be empty", l.OutputFilename)
	}
	if len(l.LayerIDs) > MaxLayers {
		return errors.New(errors.ErrCodeInvalidTemplate, "layout %q: %d layers exceeds the maximum of %d", l.OutputFilename, len(l.LayerIDs), MaxLayers)
	}
	for i, id := range l.LayerIDs {
		if id == "" {
			return errors.New(errors.ErrCodeInvalidTemplate, "layout %q: layer reference %d is empty", l.OutputFilename, i+1)
		}
	}
	return nil
}
