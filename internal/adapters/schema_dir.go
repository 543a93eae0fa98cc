package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"market-codegen/internal/ports"
)

type SchemaDirAdapter struct{}

func NewSchemaDirAdapter() SchemaDirAdapter {
	return SchemaDirAdapter{}
}

// FindSchemas walks root and returns every .yaml/.yml file in sorted
// order, skipping hidden directories.
func (a SchemaDirAdapter) FindSchemas(root string) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema directory is empty")
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan schema directory").
			WithCause(err)
	}
	sort.Strings(paths)
	return paths, nil
}

var _ ports.SchemaDirPort = SchemaDirAdapter{}
