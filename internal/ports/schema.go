package ports

import "market-codegen/internal/types"

// SchemaPort loads a raw schema declaration tree from a source path.
type SchemaPort interface {
	LoadSchema(path string) (types.Schema, error)
}

// SchemaDirPort discovers schema files beneath a directory root.
type SchemaDirPort interface {
	FindSchemas(root string) ([]string, error)
}
