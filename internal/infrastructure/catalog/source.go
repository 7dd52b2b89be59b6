// Package catalog provides the chunk sources that feed the recipe registry
// and a watcher that reloads the registry when seeded chunk files change.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/mealwise/core/internal/domain/recipe"
	"github.com/mealwise/core/internal/ports/outbound"
	"go.uber.org/zap"
)

//go:embed chunks/*.json
var embedded embed.FS

const chunkPattern = "*.json"

// EmbeddedSource serves the catalog compiled into the binary
type EmbeddedSource struct {
	fsys   fs.FS
	logger *zap.Logger
}

var _ outbound.ChunkSource = (*EmbeddedSource)(nil)

// NewEmbeddedSource creates a source over the built-in chunk files
func NewEmbeddedSource(logger *zap.Logger) *EmbeddedSource {
	sub, err := fs.Sub(embedded, "chunks")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return &EmbeddedSource{fsys: sub, logger: logger.Named("embedded-chunks")}
}

// Chunks returns the built-in chunks ordered by file name
func (s *EmbeddedSource) Chunks(ctx context.Context) ([]recipe.Chunk, error) {
	scan, err := s.Scan(ctx)
	return scan.Chunks, err
}

// Scan reads the built-in chunks and names the files that were skipped
func (s *EmbeddedSource) Scan(ctx context.Context) (Scan, error) {
	return readChunks(ctx, s.fsys, s.logger)
}

// DirSource serves chunk files seeded into a directory
type DirSource struct {
	dir    string
	logger *zap.Logger
}

var _ outbound.ChunkSource = (*DirSource)(nil)

// NewDirSource creates a source over *.json files in dir
func NewDirSource(dir string, logger *zap.Logger) *DirSource {
	return &DirSource{dir: dir, logger: logger.Named("dir-chunks")}
}

// Dir returns the directory the source reads
func (s *DirSource) Dir() string {
	return s.dir
}

// Chunks returns the chunks in dir ordered by file name
func (s *DirSource) Chunks(ctx context.Context) ([]recipe.Chunk, error) {
	scan, err := s.Scan(ctx)
	return scan.Chunks, err
}

// Scan reads the chunks in dir and names the files that were skipped
func (s *DirSource) Scan(ctx context.Context) (Scan, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		return Scan{}, fmt.Errorf("chunk directory %s: %w", s.dir, err)
	}
	if !info.IsDir() {
		return Scan{}, fmt.Errorf("chunk directory %s is not a directory", s.dir)
	}
	return readChunks(ctx, os.DirFS(s.dir), s.logger)
}

// Scan is the outcome of reading a chunk set
type Scan struct {
	Chunks []recipe.Chunk
	// Malformed lists chunk files that were not a JSON array of records
	Malformed []string
}

// Report inspects the decoded chunks and records the skipped files
func (s Scan) Report() Report {
	report := Inspect(s.Chunks)
	report.Malformed = append(report.Malformed, s.Malformed...)
	return report
}

// readChunks decodes every *.json file at the root of fsys in lexical
// order. Malformed chunks are logged and skipped; I/O errors abort.
func readChunks(ctx context.Context, fsys fs.FS, logger *zap.Logger) (Scan, error) {
	names, err := fs.Glob(fsys, chunkPattern)
	if err != nil {
		return Scan{}, fmt.Errorf("failed to list chunks: %w", err)
	}

	scan := Scan{Chunks: make([]recipe.Chunk, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Scan{}, err
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return Scan{}, fmt.Errorf("failed to read chunk %s: %w", name, err)
		}

		chunk, err := recipe.DecodeChunk(ChunkName(name), data)
		if errors.Is(err, recipe.ErrMalformedChunk) {
			logger.Warn("Skipping malformed recipe chunk", zap.String("chunk", name), zap.Error(err))
			scan.Malformed = append(scan.Malformed, name)
			continue
		}
		if err != nil {
			return Scan{}, err
		}
		scan.Chunks = append(scan.Chunks, chunk)
	}

	return scan, nil
}

// ChunkName derives a chunk's name from its file name
func ChunkName(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base))
}
