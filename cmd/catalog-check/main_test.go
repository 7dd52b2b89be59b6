package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mealwise/core/internal/infrastructure/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChunk(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func runJSON(t *testing.T, config Config) (int, catalog.Report) {
	t.Helper()
	config.OutputFormat = "json"
	config.Timeout = 5 * time.Second

	var out bytes.Buffer
	code := run(config, &out)

	var report catalog.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report), out.String())
	return code, report
}

func TestRun_MalformedChunk(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, "01_good.json", `[{"id": 1, "name": "Oats"}]`)
	writeChunk(t, dir, "02_broken.json", `{"id": 2, "name": "Not an array"}`)

	t.Run("StrictFails", func(t *testing.T) {
		code, report := runJSON(t, Config{Dir: dir, Strict: true})

		assert.Equal(t, exitCodeFailure, code)
		assert.Equal(t, 1, report.Recipes)
		assert.Equal(t, []string{"02_broken.json"}, report.Malformed)
	})

	t.Run("LenientReportsButPasses", func(t *testing.T) {
		code, report := runJSON(t, Config{Dir: dir})

		assert.Equal(t, exitCodeSuccess, code)
		assert.Equal(t, []string{"02_broken.json"}, report.Malformed)
	})
}

func TestRun_CleanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, "01_meals.json", `[{"id": 1, "name": "Oats"}, {"id": 2, "name": "Yogurt", "tags": ["S"]}]`)

	code, report := runJSON(t, Config{Dir: dir, Strict: true})

	assert.Equal(t, exitCodeSuccess, code)
	assert.Equal(t, 2, report.Recipes)
	assert.Equal(t, 1, report.Snacks)
	assert.Empty(t, report.Malformed)
}

func TestRun_EmptyCatalogFails(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, "01_broken.json", `"nothing here"`)

	code, report := runJSON(t, Config{Dir: dir})
	assert.Equal(t, exitCodeFailure, code)
	assert.Zero(t, report.Recipes)
}

func TestRun_EmbeddedCatalogHasDuplicates(t *testing.T) {
	code, report := runJSON(t, Config{})
	assert.Equal(t, exitCodeSuccess, code)
	assert.Equal(t, 12, report.Recipes)

	code, _ = runJSON(t, Config{Strict: true})
	assert.Equal(t, exitCodeFailure, code, "the built-in catalog repeats id 103")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	code := run(Config{Dir: filepath.Join(t.TempDir(), "missing"), OutputFormat: "json", Timeout: time.Second}, &out)
	assert.Equal(t, exitCodeError, code)

	code = run(Config{Dir: t.TempDir(), OutputFormat: "yaml", Timeout: time.Second}, &out)
	assert.Equal(t, exitCodeError, code)
}

func TestRun_TextOutput(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, dir, "01_good.json", `[{"id": 1, "name": "Oats"}]`)
	writeChunk(t, dir, "02_broken.json", `{}`)

	var out bytes.Buffer
	code := run(Config{Dir: dir, OutputFormat: "text", Timeout: time.Second}, &out)

	assert.Equal(t, exitCodeSuccess, code)
	assert.Contains(t, out.String(), "02_broken.json")
	assert.Contains(t, out.String(), "malformed, skipped")
	assert.Contains(t, out.String(), "recipes: 1")
}
