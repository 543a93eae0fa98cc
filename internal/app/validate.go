package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"market-codegen/internal/core"
	"market-codegen/internal/shared"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	schemaPath := strings.TrimSpace(req.SchemaPath)
	if schemaPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema path is required")
	}
	schema, err := s.SchemaLoader.LoadSchema(schemaPath)
	if err != nil {
		return ValidateResult{}, err
	}
	validated, err := core.NewSchemaValidator().Validate(ctx, schema)
	if err != nil {
		return ValidateResult{}, err
	}
	emitHints(checkSchemaHints(schema))

	log.Ctx(ctx).Debug().
		Str("schema", schemaPath).
		Int("messages", len(schema.Messages)).
		Msg("schema validated")
	return ValidateResult{
		Protocol: validated.Protocol(),
		Version:  shared.FormatVersion(validated.Version()),
		Messages: len(schema.Messages),
	}, nil
}
