package recipe

import "errors"

// Domain errors for catalog loading. Catalog reads never fail; these only
// surface from chunk sources.
var (
	ErrMalformedChunk = errors.New("recipe chunk is not a JSON array of recipes")
	ErrEmptyChunkName = errors.New("recipe chunk must have a name")
)
