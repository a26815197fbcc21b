package source

import (
	"os"
	"path/filepath"
)

// List returns the paths of recognized input files directly inside dir,
// ordered lexicographically by filename. That order is the packing order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
