package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID int
		wantOK bool
	}{
		{"plain number", "5", 5, true},
		{"leading whitespace", "  42", 42, true},
		{"trailing garbage", "12abc", 12, true},
		{"explicit plus", "+7", 7, true},
		{"negative", "-3", -3, true},
		{"letters only", "abc", 0, false},
		{"empty", "", 0, false},
		{"sign only", "-", 0, false},
		{"decimal keeps integer part", "8.9", 8, true},
		{"overflow", "99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		wantID int
		wantOK bool
	}{
		{"int", 5, 5, true},
		{"int64", int64(5), 5, true},
		{"uint8", uint8(5), 5, true},
		{"integral float", 5.0, 5, true},
		{"fractional float", 5.5, 0, false},
		{"json number", json.Number("5"), 5, true},
		{"numeric string", "5", 5, true},
		{"non-numeric string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := NormalizeID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRecipeCategory(t *testing.T) {
	snack := &Recipe{ID: 1, Tags: []string{"quick", SnackTag}}
	meal := &Recipe{ID: 2, Tags: []string{"s", "Snack"}}
	untagged := &Recipe{ID: 3}

	assert.True(t, snack.IsSnack())
	assert.Equal(t, CategorySnack, snack.Category())
	assert.False(t, meal.IsSnack(), "only the literal S tag marks a snack")
	assert.Equal(t, CategoryMainMeal, meal.Category())
	assert.Equal(t, CategoryMainMeal, untagged.Category())
}

func TestIngredientJSON(t *testing.T) {
	var ingredients []Ingredient
	err := json.Unmarshal([]byte(`["2 eggs", {"name": "salt", "amount": 1}, 3, null]`), &ingredients)
	require.NoError(t, err)
	require.Len(t, ingredients, 4)

	text, ok := ingredients[0].TextForm()
	assert.True(t, ok)
	assert.Equal(t, "2 eggs", text)

	_, ok = ingredients[1].TextForm()
	assert.False(t, ok)
	assert.Equal(t, "salt", ingredients[1].Detail["name"])

	_, ok = ingredients[2].TextForm()
	assert.False(t, ok)
	_, ok = ingredients[3].TextForm()
	assert.False(t, ok)

	out, err := json.Marshal(ingredients[:2])
	require.NoError(t, err)
	assert.JSONEq(t, `["2 eggs", {"name": "salt", "amount": 1}]`, string(out))
}

func TestDecodeChunk(t *testing.T) {
	t.Run("ValidChunk_KeepsOrderAndNulls", func(t *testing.T) {
		data := []byte(`[
			{"id": 1, "name": "Oats", "tags": ["S"]},
			null,
			{"id": "not-a-number", "name": "Broken"},
			{"id": 2, "name": "Stew"}
		]`)

		chunk, err := DecodeChunk("a", data)
		require.NoError(t, err)
		require.Len(t, chunk.Recipes, 4)
		assert.Equal(t, 1, chunk.Recipes[0].ID)
		assert.Nil(t, chunk.Recipes[1])
		assert.Nil(t, chunk.Recipes[2], "records that do not decode are dropped")
		assert.Equal(t, "Stew", chunk.Recipes[3].Name)
	})

	t.Run("NotAnArray_ReturnsError", func(t *testing.T) {
		_, err := DecodeChunk("bad", []byte(`{"id": 1}`))
		assert.ErrorIs(t, err, ErrMalformedChunk)
	})

	t.Run("MissingName_ReturnsError", func(t *testing.T) {
		_, err := DecodeChunk("", []byte(`[]`))
		assert.ErrorIs(t, err, ErrEmptyChunkName)
	})
}

func TestUsable(t *testing.T) {
	assert.False(t, Usable(nil))
	assert.False(t, Usable(&Recipe{Name: "No id"}))
	assert.True(t, Usable(&Recipe{ID: 7}))
	assert.True(t, Usable(&Recipe{ID: -3}), "only the zero id is reserved")
}
