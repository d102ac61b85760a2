package format

import (
	"fmt"
	"strings"

	"lotr-ingest/internal/model"
)

// Slice names one part of a dataset for raw display or export.
type Slice int

const (
	SliceCharacters Slice = iota
	SliceMovies
	SliceStats
	SliceAll
)

// Slices lists every slice in display order.
var Slices = []Slice{SliceCharacters, SliceMovies, SliceStats, SliceAll}

func (s Slice) String() string {
	switch s {
	case SliceMovies:
		return "movies"
	case SliceStats:
		return "stats"
	case SliceAll:
		return "all"
	default:
		return "characters"
	}
}

// ParseSlice accepts characters|movies|stats|all (case-insensitive).
func ParseSlice(s string) (Slice, error) {
	for _, sl := range Slices {
		if strings.EqualFold(strings.TrimSpace(s), sl.String()) {
			return sl, nil
		}
	}
	return SliceCharacters, fmt.Errorf("invalid slice %q (expected characters|movies|stats|all)", s)
}

// datasetView is the "all" slice. Remote log lines are not part of it.
type datasetView struct {
	Stats      model.Stats       `json:"stats"`
	Characters []model.Character `json:"characters"`
	Movies     []model.Movie     `json:"movies"`
}

// SliceOf returns only the part of ds the slice names, so switching slices never
// leaks another slice's content. A nil dataset yields nil.
func SliceOf(ds *model.Dataset, s Slice) any {
	if ds == nil {
		return nil
	}
	switch s {
	case SliceMovies:
		return ds.Movies
	case SliceStats:
		return ds.Stats
	case SliceAll:
		return datasetView{Stats: ds.Stats, Characters: ds.Characters, Movies: ds.Movies}
	default:
		return ds.Characters
	}
}

// Caption is the one-line description shown above a raw slice.
func Caption(ds *model.Dataset, s Slice) string {
	if ds == nil {
		return ""
	}
	switch s {
	case SliceMovies:
		return fmt.Sprintf("%d movies", len(ds.Movies))
	case SliceStats:
		return "Summary statistics"
	case SliceAll:
		return "Complete dataset"
	default:
		return fmt.Sprintf("%d characters", len(ds.Characters))
	}
}
