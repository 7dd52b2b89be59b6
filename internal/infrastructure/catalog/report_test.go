package catalog

import (
	"context"
	"testing"

	appcatalog "github.com/mealwise/core/internal/application/catalog"
	"github.com/mealwise/core/internal/domain/recipe"
	"github.com/mealwise/core/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInspect(t *testing.T) {
	f := testutils.NewRecipeFactory(7)
	chunks := []recipe.Chunk{
		testutils.Chunk("a", f.Recipe(1).Build(), nil, f.Recipe(2).AsSnack().Build()),
		testutils.Chunk("b", f.Recipe(2).Build(), f.Recipe(0).Build(), f.Recipe(3).Build()),
	}

	report := Inspect(chunks)

	assert.Equal(t, 3, report.Recipes)
	assert.Equal(t, 2, report.MainMeals)
	assert.Equal(t, 1, report.Snacks)
	assert.Equal(t, []int{2}, report.Duplicates)
	assert.Equal(t, 2, report.Unusable)
	assert.False(t, report.Clean())
	require.Len(t, report.Chunks, 2)
	assert.Equal(t, ChunkReport{Name: "a", Records: 3, Accepted: 2}, report.Chunks[0])
	assert.Equal(t, ChunkReport{Name: "b", Records: 3, Accepted: 1}, report.Chunks[1])
}

func TestInspect_MatchesRegistry(t *testing.T) {
	f := testutils.NewRecipeFactory(11)
	sets := map[string][]recipe.Chunk{
		"synthetic": {
			testutils.Chunk("a", f.Recipe(1).Build(), nil, f.Recipe(2).AsSnack().Build(), f.Recipe(0).Build()),
			testutils.Chunk("b", f.Recipe(2).Build(), f.Recipe(4).AsSnack().Build(), f.Recipe(1).AsSnack().Build()),
		},
	}
	embedded, err := NewEmbeddedSource(zaptest.NewLogger(t)).Chunks(context.Background())
	require.NoError(t, err)
	sets["embedded"] = embedded

	for name, chunks := range sets {
		t.Run(name, func(t *testing.T) {
			logger := zaptest.NewLogger(t)
			registry, err := appcatalog.NewRegistry(context.Background(), testutils.NewStaticChunkSource(chunks...), logger, nil)
			require.NoError(t, err)

			report := Inspect(chunks)
			assert.Equal(t, registry.Count(), report.Recipes)
			assert.Equal(t, len(registry.MainMeals()), report.MainMeals)
			assert.Equal(t, len(registry.Snacks()), report.Snacks)

			accepted := 0
			for _, chunk := range report.Chunks {
				accepted += chunk.Accepted
			}
			assert.Equal(t, registry.Count(), accepted)
		})
	}
}

func TestInspect_EmbeddedCatalog(t *testing.T) {
	chunks, err := NewEmbeddedSource(zaptest.NewLogger(t)).Chunks(context.Background())
	require.NoError(t, err)

	report := Inspect(chunks)
	assert.Equal(t, 12, report.Recipes)
	assert.Equal(t, 7, report.MainMeals)
	assert.Equal(t, 5, report.Snacks)
	assert.Equal(t, []int{103}, report.Duplicates)
}

func TestInspect_Empty(t *testing.T) {
	report := Inspect(nil)
	assert.Zero(t, report.Recipes)
	assert.True(t, report.Clean())
	assert.NotNil(t, report.Duplicates)
	assert.NotNil(t, report.Malformed)
}
