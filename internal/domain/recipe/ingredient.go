package recipe

import (
	"bytes"
	"encoding/json"
)

// Ingredient is one entry of a recipe's ingredient list. Chunk data mostly
// stores plain strings ("2 eggs"), but structured entries exist too; those
// keep their fields in Detail and have no textual form.
type Ingredient struct {
	Text   string
	Detail map[string]any
	isText bool
}

// TextIngredient builds an ingredient from its textual form
func TextIngredient(text string) Ingredient {
	return Ingredient{Text: text, isText: true}
}

// StructuredIngredient builds an ingredient without a textual form
func StructuredIngredient(detail map[string]any) Ingredient {
	return Ingredient{Detail: detail}
}

// TextForm returns the textual form of the ingredient, if it has one
func (i Ingredient) TextForm() (string, bool) {
	return i.Text, i.isText
}

// UnmarshalJSON accepts either a JSON string or any other JSON value
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*i = TextIngredient(text)
		return nil
	}

	var detail map[string]any
	if err := json.Unmarshal(trimmed, &detail); err != nil {
		// numbers, arrays and null carry no usable text either
		*i = Ingredient{}
		return nil
	}
	*i = StructuredIngredient(detail)
	return nil
}

// MarshalJSON writes the ingredient back in its source shape
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.isText {
		return json.Marshal(i.Text)
	}
	if i.Detail == nil {
		return []byte("null"), nil
	}
	return json.Marshal(i.Detail)
}
