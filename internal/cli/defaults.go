package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultSchemaPath returns the lone schema file in the working
// directory, or "" when there is none or more than one.  The config
// file market-codegen.yaml is not a schema.
func defaultSchemaPath() string {
	var matches []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		found, err := filepath.Glob(pattern)
		if err != nil {
			return ""
		}
		matches = append(matches, found...)
	}
	schemas := matches[:0]
	for _, match := range matches {
		base := filepath.Base(match)
		if base == "market-codegen.yaml" || base == "market-codegen.yml" {
			continue
		}
		schemas = append(schemas, match)
	}
	if len(schemas) != 1 {
		return ""
	}
	fmt.Fprintf(os.Stderr, "hint: --schema not set; using %s\n", schemas[0])
	return schemas[0]
}
