package template

import "github.com/matzehuels/imagemix/pkg/errors"

// Canvas defines the base rectangular surface of a creative.
// It is never mutated after creation.
type Canvas struct {
	ID     string // unique canvas identifier
	Width  int    // surface width in pixels, > 0
	Height int    // surface height in pixels, > 0
}

// Validate checks that the canvas has an identifier and positive dimensions.
func (c Canvas) Validate() error {
	if c.ID == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "canvas_id cannot be empty")
	}
	if c.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "canvas %q: width must be positive, got %d", c.ID, c.Width)
	}
	if c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "canvas %q: height must be positive, got %d", c.ID, c.Height)
	}
	return nil
}
