package app

import (
	"market-codegen/internal/adapters"
	"market-codegen/internal/ports"
)

type Service struct {
	SchemaLoader ports.SchemaPort
	SchemaDir    ports.SchemaDirPort
	Artifacts    ports.ArtifactPort
}

func NewService() Service {
	return Service{
		SchemaLoader: adapters.NewSchemaFileAdapter(),
		SchemaDir:    adapters.NewSchemaDirAdapter(),
		Artifacts:    adapters.NewArtifactFileAdapter(),
	}
}
