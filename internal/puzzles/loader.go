package puzzles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading puzzles from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new puzzle loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all puzzle files.
// Unparsable files are skipped. Returns puzzles sorted by ID for
// deterministic ordering.
func (l *Loader) LoadAll() ([]Puzzle, error) {
	var puzzles []Puzzle

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		p, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		puzzles = append(puzzles, p)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].ID < puzzles[j].ID
	})

	return puzzles, nil
}

// LoadFile loads a single puzzle file. A puzzle without an id takes the
// file name without extension.
func LoadFile(path string) (Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Puzzle{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	p, err := ParseYAML(data)
	if err != nil {
		return Puzzle{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.FilePath = path
	return p, nil
}

// LoadByID loads a specific puzzle by ID.
func (l *Loader) LoadByID(id string) (Puzzle, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return Puzzle{}, err
	}

	for _, p := range puzzles {
		if p.ID == id {
			return p, nil
		}
	}

	return Puzzle{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all puzzle IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(puzzles))
	for i, p := range puzzles {
		ids[i] = p.ID
	}
	return ids, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
