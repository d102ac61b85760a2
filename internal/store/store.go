package store

import (
	"os"
	"strings"
)

// Store is the local state directory ($LOTR_INGEST_HOME/state). It never holds
// fetched datasets; only UI preferences live here.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	return os.MkdirAll(s.Dir, 0o755)
}
