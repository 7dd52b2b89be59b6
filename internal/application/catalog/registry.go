// Package catalog provides the application layer for the recipe catalog.
// The Registry is loaded from a chunk source and answers read-only queries.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mealwise/core/internal/domain/recipe"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/internal/ports/outbound"
	"go.uber.org/zap"
)

// LoadObserver is notified after every Initialize attempt
type LoadObserver interface {
	RecordCatalogLoad(count int, duration time.Duration, err error)
}

// index is an immutable snapshot of every derived view
type index struct {
	all    []*recipe.Recipe
	meals  []*recipe.Recipe
	snacks []*recipe.Recipe
	byID   map[int]*recipe.Recipe
}

func emptyIndex() *index {
	return &index{byID: map[int]*recipe.Recipe{}}
}

// Registry implements inbound.CatalogService
type Registry struct {
	source   outbound.ChunkSource
	observer LoadObserver
	logger   *zap.Logger

	// loadMu serialises Initialize; readers never take it
	loadMu  sync.Mutex
	current atomic.Pointer[index]
}

var _ inbound.CatalogService = (*Registry)(nil)

// NewRegistry creates the registry and loads it once. The returned registry
// is fully populated; a source failure is returned as an error.
func NewRegistry(ctx context.Context, source outbound.ChunkSource, logger *zap.Logger, observer LoadObserver) (*Registry, error) {
	r := &Registry{
		source:   source,
		observer: observer,
		logger:   logger.Named("recipe-catalog"),
	}
	r.current.Store(emptyIndex())

	if err := r.Initialize(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Initialize rebuilds all views from the source. Chunks are walked in source
// order and records in chunk order; the first record seen for an id wins.
// The new index replaces the old one atomically, and on error the previous
// index stays in place.
func (r *Registry) Initialize(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	start := time.Now()
	chunks, err := r.source.Chunks(ctx)
	if err != nil {
		r.observe(0, start, err)
		return fmt.Errorf("failed to load recipe chunks: %w", err)
	}

	idx := build(chunks)
	r.current.Store(idx)
	r.observe(len(idx.all), start, nil)

	r.logger.Info("Recipe catalog initialized", zap.Int("recipes", len(idx.all)))
	return nil
}

func (r *Registry) observe(count int, start time.Time, err error) {
	if r.observer != nil {
		r.observer.RecordCatalogLoad(count, time.Since(start), err)
	}
}

func build(chunks []recipe.Chunk) *index {
	idx := emptyIndex()
	for _, chunk := range chunks {
		for _, rec := range chunk.Recipes {
			if !recipe.Usable(rec) {
				continue
			}
			if _, seen := idx.byID[rec.ID]; seen {
				continue
			}

			idx.all = append(idx.all, rec)
			idx.byID[rec.ID] = rec
			if rec.IsSnack() {
				idx.snacks = append(idx.snacks, rec)
			} else {
				idx.meals = append(idx.meals, rec)
			}
		}
	}
	return idx
}

// All returns every registered recipe in registration order
func (r *Registry) All() []*recipe.Recipe {
	return clone(r.current.Load().all)
}

// MainMeals returns the recipes not tagged as snacks
func (r *Registry) MainMeals() []*recipe.Recipe {
	return clone(r.current.Load().meals)
}

// Snacks returns the recipes tagged as snacks
func (r *Registry) Snacks() []*recipe.Recipe {
	return clone(r.current.Load().snacks)
}

// Count returns the number of registered recipes
func (r *Registry) Count() int {
	return len(r.current.Load().all)
}

// Get returns the recipe registered under id
func (r *Registry) Get(id int) (*recipe.Recipe, bool) {
	rec, ok := r.current.Load().byID[id]
	return rec, ok
}

// Lookup resolves a loosely typed reference (number or numeric string)
func (r *Registry) Lookup(ref any) (*recipe.Recipe, bool) {
	id, ok := recipe.NormalizeID(ref)
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// Search filters the pool chosen by sc. An empty query returns the whole
// pool. Otherwise a recipe matches when its name, or the text of any of its
// string ingredients, contains the query case-insensitively.
func (r *Registry) Search(query string, sc inbound.SearchContext) []*recipe.Recipe {
	idx := r.current.Load()

	var pool []*recipe.Recipe
	switch sc {
	case inbound.SearchMeals:
		pool = idx.meals
	case inbound.SearchSnacks:
		pool = idx.snacks
	default:
		pool = idx.all
	}

	if query == "" {
		return clone(pool)
	}

	needle := strings.ToLower(query)
	results := make([]*recipe.Recipe, 0)
	for _, rec := range pool {
		if matches(rec, needle) {
			results = append(results, rec)
		}
	}
	return results
}

func matches(rec *recipe.Recipe, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Name), needle) {
		return true
	}
	for _, ing := range rec.Ingredients {
		text, ok := ing.TextForm()
		if ok && strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

func clone(recipes []*recipe.Recipe) []*recipe.Recipe {
	out := make([]*recipe.Recipe, len(recipes))
	copy(out, recipes)
	return out
}
