package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"market-codegen/internal/shared"
	"market-codegen/internal/types"
)

// LayoutBuilder turns a validated schema into the resolved Model.  It
// performs no semantic checking of its own: every rule has already been
// enforced by SchemaValidator, which is the only way to obtain a
// Validated value.  Resolution failures past that point are internal
// faults, not user errors.
type LayoutBuilder struct{}

func NewLayoutBuilder() LayoutBuilder {
	return LayoutBuilder{}
}

// Build resolves every enum and message of the validated schema into
// the byte-accurate layout model.
func (b LayoutBuilder) Build(ctx context.Context, validated Validated) (types.Model, error) {
	assert.NotEmpty(ctx, validated.Protocol(), "layout builder requires a schema that passed validation")
	schema := validated.schema
	enums, index, err := NewEnumResolver().ResolveAll(schema.Enums)
	if err != nil {
		return types.Model{}, internalFault("enum catalog failed to resolve after validation", err)
	}
	resolver := NewTypeResolver(enums, index)
	defaultEndian := types.EndianLittle
	if schema.Endian != "" {
		defaultEndian = types.Endianness(schema.Endian)
	}
	model := types.Model{
		Enums:     enums,
		EnumIndex: index,
		Messages:  make([]types.Message, 0, len(schema.Messages)),
	}
	for _, decl := range schema.Messages {
		message, err := buildMessage(resolver, defaultEndian, decl)
		if err != nil {
			return types.Model{}, err
		}
		model.Messages = append(model.Messages, message)
	}
	log.Ctx(ctx).Debug().
		Int("enums", len(model.Enums)).
		Int("messages", len(model.Messages)).
		Msg("layout built")
	return model, nil
}

func buildMessage(resolver TypeResolver, defaultEndian types.Endianness, decl types.MessageDecl) (types.Message, error) {
	message := types.Message{
		Name:             decl.Name,
		Fields:           make([]types.Field, 0, len(decl.Fields)),
		PresenceIndex:    -1,
		GroupInsertIndex: -1,
	}
	fieldIndex := make(map[string]int, len(decl.Fields))
	for _, fd := range decl.Fields {
		if fd.Name == types.GroupsMarkerName && decl.GroupsDeclared {
			message.GroupInsertIndex = len(message.Fields)
			continue
		}
		field, err := buildField(resolver, defaultEndian, decl.Name, fd)
		if err != nil {
			return types.Message{}, err
		}
		if field.PresenceMap {
			message.PresenceField = field.Name
			message.PresenceIndex = len(message.Fields)
			message.PresenceWidth = field.Size * 8
		}
		if field.Optional {
			message.HasOptional = true
		} else {
			// Optional fields and groups are excluded: only the
			// unconditional fields make up the fixed footprint.
			message.FixedBytes += field.Size
		}
		fieldIndex[field.Name] = len(message.Fields)
		message.Fields = append(message.Fields, field)
	}
	if message.GroupInsertIndex < 0 {
		message.GroupInsertIndex = len(message.Fields)
	}
	for _, gd := range decl.Groups {
		group, err := buildGroup(resolver, defaultEndian, decl.Name, fieldIndex, gd)
		if err != nil {
			return types.Message{}, err
		}
		message.Groups = append(message.Groups, group)
	}
	message.HasGroups = len(message.Groups) > 0
	return message, nil
}

func buildField(resolver TypeResolver, defaultEndian types.Endianness, messageName string, decl types.FieldDecl) (types.Field, error) {
	resolved, err := resolver.Resolve("messages."+messageName, decl)
	if err != nil {
		return types.Field{}, internalFault(fmt.Sprintf("field '%s' in message '%s' failed to resolve after validation", decl.Name, messageName), err)
	}
	endian := defaultEndian
	if decl.Endian != "" {
		endian = types.Endianness(decl.Endian)
	}
	field := types.Field{
		Name:        decl.Name,
		Kind:        resolved.Kind,
		Size:        resolved.Size,
		Endian:      endian,
		Value:       decl.Value,
		HasValue:    decl.Value != nil,
		OptionalBit: -1,
		PresenceMap: decl.Purpose == types.PresenceMapPurpose,
		EnumIndex:   resolved.EnumIndex,
	}
	if decl.OptionalBit != nil {
		field.Optional = true
		field.OptionalBit = *decl.OptionalBit
	}
	return field, nil
}

func buildGroup(resolver TypeResolver, defaultEndian types.Endianness, messageName string, fieldIndex map[string]int, decl types.GroupDecl) (types.Group, error) {
	group := types.Group{
		Name:            decl.Name,
		CountField:      decl.CountField,
		CountFieldIndex: -1,
		Container:       shared.ContainerName(decl.Name),
		Fields:          make([]types.Field, 0, len(decl.Fields)),
	}
	if decl.CountField != "" {
		idx, ok := fieldIndex[decl.CountField]
		if !ok {
			return types.Group{}, internalFault(fmt.Sprintf("count_field '%s' of group '%s' vanished after validation", decl.CountField, decl.Name), nil)
		}
		group.CountFieldIndex = idx
	}
	for _, fd := range decl.Fields {
		field, err := buildField(resolver, defaultEndian, messageName, fd)
		if err != nil {
			return types.Group{}, err
		}
		group.Fields = append(group.Fields, field)
	}
	return group, nil
}

func internalFault(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(cause)
}
