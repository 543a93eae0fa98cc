package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"market-codegen/internal/core"
	"market-codegen/internal/shared"
)

// Inspect compiles a schema up to the resolved model and reports its
// layout facts without writing anything.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	schemaPath := strings.TrimSpace(req.SchemaPath)
	if schemaPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema path is required")
	}
	schema, err := s.SchemaLoader.LoadSchema(schemaPath)
	if err != nil {
		return InspectResult{}, err
	}
	validated, err := core.NewSchemaValidator().Validate(ctx, schema)
	if err != nil {
		return InspectResult{}, err
	}
	model, err := core.NewLayoutBuilder().Build(ctx, validated)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		Protocol:  validated.Protocol(),
		Version:   shared.FormatVersion(validated.Version()),
		Namespace: shared.Namespace(validated.Protocol(), validated.Version()),
	}
	for _, e := range model.Enums {
		result.Enums = append(result.Enums, InspectEnumSummary{
			Name:   e.Name,
			Values: len(e.Values),
			Width:  e.Width,
		})
	}
	for _, m := range model.Messages {
		result.Messages = append(result.Messages, InspectMessageSummary{
			Name:          m.Name,
			Fields:        len(m.Fields),
			Groups:        len(m.Groups),
			FixedBytes:    m.FixedBytes,
			PresenceWidth: m.PresenceWidth,
			HasOptional:   m.HasOptional,
		})
	}

	log.Ctx(ctx).Debug().
		Str("schema", schemaPath).
		Int("messages", len(model.Messages)).
		Msg("layout inspected")
	return result, nil
}
