// Package recipe contains the recipe catalog domain model.
// Records are loaded once from static chunks and treated as read-only afterwards.
package recipe

// SnackTag is the tag that classifies a recipe as a snack
const SnackTag = "S"

// Category partitions the catalog
type Category string

const (
	CategoryMainMeal Category = "meal"
	CategorySnack    Category = "snack"
)

// Macros is the per-serving macro-nutrient summary of a recipe
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a single catalog record.
// Records returned by the catalog are shared and must not be modified.
type Recipe struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Servings     int          `json:"servings"`
	PrepTime     string       `json:"prepTime"`
	CookTime     string       `json:"cookTime"`
	Ingredients  []Ingredient `json:"ingredients"`
	Macros       Macros       `json:"macros"`
	Instructions []string     `json:"instructions"`
	Tags         []string     `json:"tags,omitempty"`
}

// Usable reports whether a chunk record can be registered: nil records and
// records without an id are skipped
func Usable(r *Recipe) bool {
	return r != nil && r.ID != 0
}

// IsSnack reports whether the recipe carries the snack tag
func (r *Recipe) IsSnack() bool {
	for _, tag := range r.Tags {
		if tag == SnackTag {
			return true
		}
	}
	return false
}

// Category returns the partition the recipe belongs to
func (r *Recipe) Category() Category {
	if r.IsSnack() {
		return CategorySnack
	}
	return CategoryMainMeal
}
