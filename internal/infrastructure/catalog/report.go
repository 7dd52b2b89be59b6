package catalog

import "github.com/mealwise/core/internal/domain/recipe"

// ChunkReport summarises one chunk
type ChunkReport struct {
	Name     string `json:"name"`
	Records  int    `json:"records"`
	Accepted int    `json:"accepted"`
}

// Report describes what loading a set of chunks would produce. Duplicates
// and unusable records are not errors for the registry, but operators
// seeding a catalog usually want to know about them.
type Report struct {
	Chunks     []ChunkReport `json:"chunks"`
	Recipes    int           `json:"recipes"`
	MainMeals  int           `json:"mainMeals"`
	Snacks     int           `json:"snacks"`
	Duplicates []int         `json:"duplicates"`
	Unusable   int           `json:"unusable"`
	Malformed  []string      `json:"malformed"`
}

// Clean reports whether every chunk file and every record was loaded
func (r Report) Clean() bool {
	return len(r.Duplicates) == 0 && r.Unusable == 0 && len(r.Malformed) == 0
}

// Inspect walks chunks with the registry's acceptance rules
func Inspect(chunks []recipe.Chunk) Report {
	report := Report{
		Chunks:     make([]ChunkReport, 0, len(chunks)),
		Duplicates: []int{},
		Malformed:  []string{},
	}
	seen := make(map[int]struct{})

	for _, chunk := range chunks {
		cr := ChunkReport{Name: chunk.Name, Records: len(chunk.Recipes)}
		for _, rec := range chunk.Recipes {
			if !recipe.Usable(rec) {
				report.Unusable++
				continue
			}
			if _, dup := seen[rec.ID]; dup {
				report.Duplicates = append(report.Duplicates, rec.ID)
				continue
			}
			seen[rec.ID] = struct{}{}
			cr.Accepted++

			if rec.IsSnack() {
				report.Snacks++
			} else {
				report.MainMeals++
			}
		}
		report.Chunks = append(report.Chunks, cr)
	}

	report.Recipes = len(seen)
	return report
}
