// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/mealwise/core/internal/domain/nutrition"
	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/domain/recipe"
)

// SearchContext selects the pool a catalog search runs against
type SearchContext string

const (
	SearchAll    SearchContext = "all"
	SearchMeals  SearchContext = "meals"
	SearchSnacks SearchContext = "snacks"
)

// ParseSearchContext maps a raw value to a SearchContext; anything
// unrecognised means the full catalog
func ParseSearchContext(raw string) SearchContext {
	switch SearchContext(raw) {
	case SearchMeals:
		return SearchMeals
	case SearchSnacks:
		return SearchSnacks
	default:
		return SearchAll
	}
}

// CatalogService is the read side of the recipe registry.
// Returned slices are fresh; the records they point to are shared and
// must be treated as read-only.
type CatalogService interface {
	All() []*recipe.Recipe
	MainMeals() []*recipe.Recipe
	Snacks() []*recipe.Recipe
	Get(id int) (*recipe.Recipe, bool)
	Lookup(ref any) (*recipe.Recipe, bool)
	Search(query string, sc SearchContext) []*recipe.Recipe
	Count() int

	// Initialize rebuilds every view from the chunk source
	Initialize(ctx context.Context) error
}

// ProfileService defines the use cases around a user's profile
type ProfileService interface {
	Get(ctx context.Context, userID string) (profile.Document, error)
	Update(ctx context.Context, userID string, patch profile.Document) (profile.Document, error)
	Reset(ctx context.Context, userID string) (profile.Document, error)
	Defaults(userID string) profile.Document
	Targets(ctx context.Context, userID string) (nutrition.Targets, error)
}
