// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe recipe.Recipe
}

// Recipe starts a builder for a recipe with the given id and fake content
func (f *RecipeFactory) Recipe(id int) *RecipeBuilder {
	ingredients := make([]recipe.Ingredient, 0, 4)
	for i := 0; i < 4; i++ {
		ingredients = append(ingredients, recipe.TextIngredient(
			fmt.Sprintf("%d %s %s", f.faker.Number(1, 4), f.faker.RandomString([]string{"cup", "tbsp", "g", "oz"}), f.faker.Vegetable()),
		))
	}

	return &RecipeBuilder{recipe: recipe.Recipe{
		ID:          id,
		Name:        f.faker.Dinner(),
		Description: f.faker.Sentence(8),
		Servings:    f.faker.Number(1, 6),
		PrepTime:    fmt.Sprintf("%d min", f.faker.Number(5, 30)),
		CookTime:    fmt.Sprintf("%d min", f.faker.Number(0, 60)),
		Ingredients: ingredients,
		Macros: recipe.Macros{
			Calories: float64(f.faker.Number(150, 900)),
			Protein:  float64(f.faker.Number(5, 60)),
			Carbs:    float64(f.faker.Number(5, 120)),
			Fat:      float64(f.faker.Number(2, 45)),
		},
		Instructions: []string{f.faker.Sentence(6), f.faker.Sentence(6)},
	}}
}

// WithName sets the recipe name
func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.recipe.Name = name
	return b
}

// WithTags sets the recipe tags
func (b *RecipeBuilder) WithTags(tags ...string) *RecipeBuilder {
	b.recipe.Tags = tags
	return b
}

// AsSnack tags the recipe as a snack
func (b *RecipeBuilder) AsSnack() *RecipeBuilder {
	b.recipe.Tags = append(b.recipe.Tags, recipe.SnackTag)
	return b
}

// WithIngredients replaces the ingredients with textual ones
func (b *RecipeBuilder) WithIngredients(texts ...string) *RecipeBuilder {
	b.recipe.Ingredients = make([]recipe.Ingredient, 0, len(texts))
	for _, text := range texts {
		b.recipe.Ingredients = append(b.recipe.Ingredients, recipe.TextIngredient(text))
	}
	return b
}

// Build returns the recipe
func (b *RecipeBuilder) Build() *recipe.Recipe {
	r := b.recipe
	return &r
}

// Chunk builds a named chunk from recipes
func Chunk(name string, recipes ...*recipe.Recipe) recipe.Chunk {
	return recipe.Chunk{Name: name, Recipes: recipes}
}

// ProfileFactory creates partial profile documents
type ProfileFactory struct {
	faker *gofakeit.Faker
}

// NewProfileFactory creates a new profile factory with seeded faker
func NewProfileFactory(seed int64) *ProfileFactory {
	return &ProfileFactory{
		faker: gofakeit.New(seed),
	}
}

// UserID returns a fake external user id
func (f *ProfileFactory) UserID() string {
	return f.faker.UUID()
}

// Measurements returns a partial profile holding everything nutrition
// targets need
func (f *ProfileFactory) Measurements() profile.Document {
	return profile.Document{
		"name":          f.faker.Name(),
		"email":         f.faker.Email(),
		"weightKg":      float64(f.faker.Number(55, 110)),
		"heightCm":      float64(f.faker.Number(155, 200)),
		"age":           float64(f.faker.Number(18, 70)),
		"sex":           f.faker.RandomString([]string{"male", "female"}),
		"activityLevel": f.faker.RandomString([]string{"sedentary", "light", "moderate", "active", "veryActive"}),
		"primaryGoal":   f.faker.RandomString([]string{"loseFat", "gainMuscle", "maintain", "recomp"}),
	}
}
