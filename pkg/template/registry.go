package template

import "github.com/matzehuels/imagemix/pkg/errors"

// Registry indexes image and text layers by id for O(1) lookup during
// rendering. It is read-only after construction and safe to share across
// concurrent renders.
type Registry struct {
	images map[string]ImageLayer
	texts  map[string]TextLayer
}

// NewRegistry builds the two id mappings. Duplicate ids within the same
// layer kind are a configuration error; a collision between an image id and
// a text id is legal to construct but fails at Resolve time, matching the
// per-entry error policy.
func NewRegistry(images []ImageLayer, texts []TextLayer) (*Registry, error) {
	r := &Registry{
		images: make(map[string]ImageLayer, len(images)),
		texts:  make(map[string]TextLayer, len(texts)),
	}
	for _, l := range images {
		if _, ok := r.images[l.ID]; ok {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "duplicate image layer_id %q", l.ID)
		}
		r.images[l.ID] = l
	}
	for _, l := range texts {
		if _, ok := r.texts[l.ID]; ok {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "duplicate text layer_id %q", l.ID)
		}
		r.texts[l.ID] = l
	}
	return r, nil
}

// Resolve maps a layer id to exactly one layer record. It returns an
// UNKNOWN_LAYER error when the id is in neither table, and AMBIGUOUS_LAYER
// when it is in both.
func (r *Registry) Resolve(id string) (Layer, error) {
	img, hasImage := r.images[id]
	txt, hasText := r.texts[id]

	switch {
	case hasImage && hasText:
		return Layer{}, errors.New(errors.ErrCodeAmbiguousLayer, "layer %q defined as both image and text layer", id)
	case hasImage:
		return Layer{Image: &img}, nil
	case hasText:
		return Layer{Text: &txt}, nil
	}
	return Layer{}, errors.New(errors.ErrCodeUnknownLayer, "layer %q not defined", id)
}

// Len returns the total number of registered layers.
func (r *Registry) Len() int {
	return len(r.images) + len(r.texts)
}
