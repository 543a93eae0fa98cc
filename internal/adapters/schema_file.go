package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"market-codegen/internal/ports"
	"market-codegen/internal/types"
)

type SchemaFileAdapter struct{}

func NewSchemaFileAdapter() SchemaFileAdapter {
	return SchemaFileAdapter{}
}

func (a SchemaFileAdapter) LoadSchema(path string) (types.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Schema{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("schema file not found").
			WithCause(err)
	}
	var schema types.Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return types.Schema{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse schema yaml").
			WithCause(err)
	}
	return schema, nil
}

var _ ports.SchemaPort = SchemaFileAdapter{}
