package core

import "market-codegen/internal/types"

// Validated wraps a schema that has passed SchemaValidator.Validate.
// Only the validator constructs it, which is what entitles LayoutBuilder
// to skip re-checking semantic rules.  The zero value is not usable.
type Validated struct {
	schema types.Schema
}

// Protocol returns the schema's protocol identifier.
func (v Validated) Protocol() string {
	p, _ := v.schema.Protocol.(string)
	return p
}

// Version returns the schema's declared version, an integer or a string.
func (v Validated) Version() any {
	return v.schema.Version
}
