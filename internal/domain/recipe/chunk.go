package recipe

import (
	"encoding/json"
	"fmt"
)

// Chunk is one static, ordered batch of recipe records. A nil entry stands
// for a null or unreadable record in the source data.
type Chunk struct {
	Name    string
	Recipes []*Recipe
}

// DecodeChunk parses a chunk from its JSON form, an array of recipe objects.
// Individual records that do not fit the recipe shape become nil entries so
// one bad record never takes the rest of the chunk down with it.
func DecodeChunk(name string, data []byte) (Chunk, error) {
	if name == "" {
		return Chunk{}, ErrEmptyChunkName
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Chunk{}, fmt.Errorf("%w: %s: %v", ErrMalformedChunk, name, err)
	}

	recipes := make([]*Recipe, len(raw))
	for i, record := range raw {
		var r *Recipe
		if err := json.Unmarshal(record, &r); err != nil {
			continue
		}
		recipes[i] = r
	}
	return Chunk{Name: name, Recipes: recipes}, nil
}
