package template

import "github.com/matzehuels/imagemix/pkg/errors"

// Template holds the full parsed record set for one run. It is built once,
// validated, and then treated as read-only for the duration of the batch.
type Template struct {
	Canvases    []Canvas
	ImageLayers []ImageLayer
	TextLayers  []TextLayer
	Layouts     []Layout

	canvasByID map[string]Canvas
}

// New assembles a Template from parsed records and validates it.
func New(canvases []Canvas, images []ImageLayer, texts []TextLayer, layouts []Layout) (*Template, error) {
	t := &Template{
		Canvases:    canvases,
		ImageLayers: images,
		TextLayers:  texts,
		Layouts:     layouts,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.canvasByID = make(map[string]Canvas, len(canvases))
	for _, c := range canvases {
		t.canvasByID[c.ID] = c
	}
	return t, nil
}

// Validate checks every record and the canvas identifier uniqueness.
// A template with no layouts cannot render anything and is rejected.
func (t *Template) Validate() error {
	if len(t.Layouts) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template has no layouts")
	}

	seen := make(map[string]bool, len(t.Canvases))
	for _, c := range t.Canvases {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.ID] {
			return errors.New(errors.ErrCodeInvalidTemplate, "duplicate canvas_id %q", c.ID)
		}
		seen[c.ID] = true
	}
	for _, l := range t.ImageLayers {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for _, l := range t.TextLayers {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for _, l := range t.Layouts {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Canvas looks up a canvas by id. Returns an UNKNOWN_CANVAS error when the
// id is not defined in the canvas table.
func (t *Template) Canvas(id string) (Canvas, error) {
	c, ok := t.canvasByID[id]
	if !ok {
		return Canvas{}, errors.New(errors.ErrCodeUnknownCanvas, "canvas %q not defined", id)
	}
	return c, nil
}
