package profile

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Top-level keys referenced outside the typed schema
const (
	KeyID                = "id"
	KeyMacroTargets      = "macroTargets"
	KeyTDEE              = "tdee"
	KeyLeanBodyMass      = "leanBodyMass"
	KeyDashboardSettings = "dashboardSettings"
)

// Document is a profile as the document store holds it: any subset of the
// Settings keys, with values exactly as they were written. A key mapped to
// nil is present-but-null, which is different from an absent key.
type Document map[string]any

// Document converts typed settings into document form. Nested values are
// freshly allocated on every call.
func (s Settings) Document() Document {
	data, err := json.Marshal(s)
	if err != nil {
		// Settings only holds strings, numbers, bools, slices and structs of those
		return Document{KeyID: s.ID}
	}

	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{KeyID: s.ID}
	}
	return doc
}

// MergeWithDefaults overlays a partial profile onto the user's defaults.
// The overlay is shallow: a key present in partial, even with a nil value,
// replaces the default wholesale, nested objects included. The id is always
// the supplied userID regardless of partial's own id.
func MergeWithDefaults(partial Document, userID string) Document {
	merged := Defaults(userID)
	for key, value := range partial {
		merged[key] = value
	}
	merged[KeyID] = userID
	return merged
}

// Overlay returns a new document holding base's keys replaced by patch's.
// Neither input is modified.
func Overlay(base, patch Document) Document {
	out := make(Document, len(base)+len(patch))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range patch {
		out[key] = value
	}
	return out
}

// Without returns a copy of the document without the given keys
func (d Document) Without(keys ...string) Document {
	out := make(Document, len(d))
	for key, value := range d {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

// Decode returns the typed view of a document. Numeric strings and similar
// loosely typed values are converted; values that cannot be converted make
// Decode fail. Absent and nil keys keep their zero value.
func (d Document) Decode() (Settings, error) {
	var settings Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &settings,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to build profile decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(d)); err != nil {
		return Settings{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return settings, nil
}
