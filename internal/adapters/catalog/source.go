// Package catalog reads devotional datasets from an embedded or on-disk file tree.
//
// Each collection lives in one file named after it: aarti.json, chalisa.yaml,
// strotam.yml and so on. A file holds a top-level list of item records.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

//go:embed data/*.json data/*.yaml
var embedded embed.FS

// extensions lists the accepted dataset file extensions in lookup order.
var extensions = []string{".json", ".yaml", ".yml"}

// Source loads collections from a file system.
type Source struct {
	fsys fs.FS
	desc string
}

var _ ports.ItemSource = (*Source)(nil)

// NewEmbeddedSource returns a source backed by the datasets compiled into the binary.
func NewEmbeddedSource() *Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(fmt.Sprintf("catalog: embedded data missing: %v", err))
	}

	return &Source{fsys: sub, desc: "embedded"}
}

// NewDirSource returns a source reading datasets from dir.
func NewDirSource(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog dir: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("opening catalog dir: %s is not a directory", dir)
	}

	return &Source{fsys: os.DirFS(dir), desc: dir}, nil
}

// NewFSSource returns a source over an arbitrary file system.
func NewFSSource(fsys fs.FS, desc string) *Source {
	return &Source{fsys: fsys, desc: desc}
}

// NewSource picks the directory source when dir is set and the embedded one otherwise.
func NewSource(dir string) (*Source, error) {
	if dir == "" {
		return NewEmbeddedSource(), nil
	}

	return NewDirSource(dir)
}

// Describe returns "embedded" or the dataset directory.
func (s *Source) Describe() string {
	return s.desc
}

// LoadCollection reads and decodes the dataset of the named collection.
// A collection without a dataset file is empty.
func (s *Source) LoadCollection(ctx context.Context, name domain.CollectionName) ([]domain.DevotionalItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		path := string(name) + ext

		data, err := fs.ReadFile(s.fsys, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		records, err := decodeRecords(path, data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}

		items, err := toItems(records)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}

		return items, nil
	}

	return []domain.DevotionalItem{}, nil
}
