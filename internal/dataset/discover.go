package dataset

import (
	"os"
	"path/filepath"
	"strings"
)

// Discover lists the simulation files in dir. A missing directory yields no
// files and no error.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	files := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// SimName strips the "_simulation.csv" suffix used to label a run.
func SimName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), "_"+Suffix)
}

// Stem strips the ".csv" extension; output files are named after it.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".csv")
}
