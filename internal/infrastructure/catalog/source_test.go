package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	appcatalog "github.com/mealwise/core/internal/application/catalog"
	"github.com/mealwise/core/internal/domain/recipe"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeChunk(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func chunkNames(chunks []recipe.Chunk) []string {
	names := make([]string, 0, len(chunks))
	for _, c := range chunks {
		names = append(names, c.Name)
	}
	return names
}

func TestEmbeddedSource_BuiltInCatalog(t *testing.T) {
	source := NewEmbeddedSource(zaptest.NewLogger(t))

	chunks, err := source.Chunks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"01_breakfast", "02_mains", "03_snacks"}, chunkNames(chunks))

	registry, err := appcatalog.NewRegistry(context.Background(), source, zaptest.NewLogger(t), nil)
	require.NoError(t, err)

	// 103 appears in the breakfast chunk as a snack and again in mains
	rec, ok := registry.Get(103)
	require.True(t, ok)
	assert.Equal(t, "Greek Yogurt Parfait", rec.Name)
	assert.True(t, rec.IsSnack())

	assert.Equal(t, 12, registry.Count())
	assert.Len(t, registry.Snacks(), 5)
	assert.Len(t, registry.MainMeals(), 7)

	// the capers entry is structured and not searchable
	assert.Empty(t, registry.Search("capers", inbound.SearchAll))
	assert.Len(t, registry.Search("salmon", inbound.SearchAll), 1)
}

func TestDirSource(t *testing.T) {
	t.Run("ReadsJSONFilesInOrder", func(t *testing.T) {
		dir := t.TempDir()
		writeChunk(t, dir, "b.json", `[{"id": 2, "name": "Second"}]`)
		writeChunk(t, dir, "a.json", `[{"id": 1, "name": "First"}, null, {"id": "bad"}]`)
		writeChunk(t, dir, "notes.txt", `ignored`)

		chunks, err := NewDirSource(dir, zaptest.NewLogger(t)).Chunks(context.Background())
		require.NoError(t, err)

		require.Equal(t, []string{"a", "b"}, chunkNames(chunks))
		require.Len(t, chunks[0].Recipes, 3)
		assert.Equal(t, 1, chunks[0].Recipes[0].ID)
		assert.Nil(t, chunks[0].Recipes[1])
		assert.Nil(t, chunks[0].Recipes[2])
	})

	t.Run("SkipsMalformedChunk", func(t *testing.T) {
		dir := t.TempDir()
		writeChunk(t, dir, "a.json", `{"not": "an array"}`)
		writeChunk(t, dir, "b.json", `[{"id": 2, "name": "Second"}]`)

		chunks, err := NewDirSource(dir, zaptest.NewLogger(t)).Chunks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, chunkNames(chunks))
	})

	t.Run("ScanNamesMalformedChunks", func(t *testing.T) {
		dir := t.TempDir()
		writeChunk(t, dir, "01_good.json", `[{"id": 1, "name": "Oats"}]`)
		writeChunk(t, dir, "02_broken.json", `{"id": 2}`)

		scan, err := NewDirSource(dir, zaptest.NewLogger(t)).Scan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"01_good"}, chunkNames(scan.Chunks))
		assert.Equal(t, []string{"02_broken.json"}, scan.Malformed)

		report := scan.Report()
		assert.Equal(t, 1, report.Recipes)
		assert.Equal(t, []string{"02_broken.json"}, report.Malformed)
		assert.False(t, report.Clean())
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, err := NewDirSource(filepath.Join(t.TempDir(), "missing"), zaptest.NewLogger(t)).Chunks(context.Background())
		assert.Error(t, err)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		dir := t.TempDir()
		writeChunk(t, dir, "a.json", `[]`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewDirSource(dir, zaptest.NewLogger(t)).Chunks(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestChunkName(t *testing.T) {
	assert.Equal(t, "01_breakfast", ChunkName("01_breakfast.json"))
	assert.Equal(t, "snacks", ChunkName("nested/snacks.json"))
}
