package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"market-codegen/internal/types"
)

// SchemaValidator enforces the structural and semantic rules of a schema
// before layout building.  It stops at the first violation found during
// a deterministic top-down traversal and reports it as a ValidationError
// carrying the offending path.
type SchemaValidator struct{}

func NewSchemaValidator() SchemaValidator {
	return SchemaValidator{}
}

// Validate checks the whole schema tree and mints the Validated token
// that LayoutBuilder requires.
func (v SchemaValidator) Validate(ctx context.Context, schema types.Schema) (Validated, error) {
	if err := validateHeader(schema); err != nil {
		return Validated{}, err
	}
	enums, index, err := NewEnumResolver().ResolveAll(schema.Enums)
	if err != nil {
		return Validated{}, err
	}
	resolver := NewTypeResolver(enums, index)
	for _, group := range schema.Groups {
		if err := validateCatalogGroup(resolver, group); err != nil {
			return Validated{}, err
		}
	}
	names := make(map[string]struct{}, len(schema.Messages))
	for _, message := range schema.Messages {
		if _, dup := names[message.Name]; dup {
			return Validated{}, validationErrorf("messages."+message.Name, "Duplicate message name '%s'", message.Name)
		}
		names[message.Name] = struct{}{}
		if err := validateMessage(resolver, message); err != nil {
			return Validated{}, err
		}
	}
	log.Ctx(ctx).Debug().
		Int("enums", len(schema.Enums)).
		Int("groups", len(schema.Groups)).
		Int("messages", len(schema.Messages)).
		Msg("schema validated")
	return Validated{schema: schema}, nil
}

func validateHeader(schema types.Schema) error {
	switch p := schema.Protocol.(type) {
	case nil:
		return validationErrorf("protocol", "required key is missing")
	case string:
		if strings.TrimSpace(p) == "" {
			return validationErrorf("protocol", "must be a non-empty string")
		}
	default:
		return validationErrorf("protocol", "must be a string, got %T", schema.Protocol)
	}
	switch schema.Version.(type) {
	case nil:
		return validationErrorf("version", "required key is missing")
	case int, int64, uint64, string:
	default:
		return validationErrorf("version", "must be an integer or a string, got %T", schema.Version)
	}
	if schema.Messages == nil {
		return validationErrorf("messages", "required key is missing")
	}
	switch types.Endianness(schema.Endian) {
	case "", types.EndianLittle, types.EndianBig:
	default:
		return validationErrorf("endian", "must be 'le' or 'be', got '%s'", schema.Endian)
	}
	return nil
}

// validateCatalogGroup checks a top-level catalog group on its own.
// Messages never reference the catalog, so count_field and optional_bit
// have nothing to resolve against and are not cross-checked here.
func validateCatalogGroup(resolver TypeResolver, group types.GroupDecl) error {
	if strings.TrimSpace(group.Name) == "" {
		return validationErrorf("groups", "group name must not be empty")
	}
	base := "groups." + group.Name
	seen := make(map[string]struct{}, len(group.Fields))
	for i, field := range group.Fields {
		path := fmt.Sprintf("%s.fields[%d]", base, i)
		if err := registerFieldName(path, field.Name, seen); err != nil {
			return err
		}
		if err := validateFieldBody(resolver, path, field); err != nil {
			return err
		}
	}
	return nil
}

// validateMessage walks a message in two passes: the first locates the
// presence map and fixes its bit width, the second checks every field
// and inline group against it.
func validateMessage(resolver TypeResolver, message types.MessageDecl) error {
	base := "messages." + message.Name
	presenceWidth := 0
	presenceSeen := false
	for i, field := range message.Fields {
		if field.Purpose != types.PresenceMapPurpose {
			continue
		}
		path := fmt.Sprintf("%s.fields[%d]", base, i)
		if presenceSeen {
			return validationErrorf(path+".purpose", "message declares more than one presence_map field")
		}
		presenceSeen = true
		width, ok := uintWidths[strings.TrimSpace(field.Type)]
		if !ok {
			return validationErrorf(path+".type", "presence_map field must be u8, u16, u32, or u64, got '%s'", field.Type)
		}
		presenceWidth = width * 8
	}

	seen := make(map[string]struct{}, len(message.Fields))
	layoutFields := make(map[string]types.FieldDecl, len(message.Fields))
	for i, field := range message.Fields {
		path := fmt.Sprintf("%s.fields[%d]", base, i)
		if err := registerFieldName(path, field.Name, seen); err != nil {
			return err
		}
		if field.Name == types.GroupsMarkerName && message.GroupsDeclared {
			// Position marker for the repeating groups, not a field.
			continue
		}
		layoutFields[field.Name] = field
		if err := validateFieldBody(resolver, path, field); err != nil {
			return err
		}
		if err := validateOptionalBit(path, field, presenceWidth); err != nil {
			return err
		}
	}

	for j, group := range message.Groups {
		if err := validateMessageGroup(resolver, base, j, group, layoutFields, presenceWidth); err != nil {
			return err
		}
	}
	return nil
}

// validateMessageGroup checks an inline group.  Field names live in the
// group's own scope, but optional bits index the enclosing message's
// presence map and count_field must name one of its fields.  The count
// field must be an unsigned integer, since its decoded value drives the
// element loop.
func validateMessageGroup(resolver TypeResolver, base string, idx int, group types.GroupDecl, messageFields map[string]types.FieldDecl, presenceWidth int) error {
	path := fmt.Sprintf("%s.groups[%d]", base, idx)
	if strings.TrimSpace(group.Name) == "" {
		return validationErrorf(path+".name", "required key is missing")
	}
	if group.CountField != "" {
		decl, ok := messageFields[group.CountField]
		if !ok {
			return validationErrorf(path+".count_field", "count_field '%s' not found in message fields", group.CountField)
		}
		if _, numeric := uintWidths[strings.TrimSpace(decl.Type)]; !numeric {
			return validationErrorf(path+".count_field", "count_field '%s' must be an unsigned integer field, got '%s'", group.CountField, decl.Type)
		}
	}
	seen := make(map[string]struct{}, len(group.Fields))
	for k, field := range group.Fields {
		fieldPath := fmt.Sprintf("%s.fields[%d]", path, k)
		if err := registerFieldName(fieldPath, field.Name, seen); err != nil {
			return err
		}
		if err := validateFieldBody(resolver, fieldPath, field); err != nil {
			return err
		}
		if err := validateOptionalBit(fieldPath, field, presenceWidth); err != nil {
			return err
		}
	}
	return nil
}

func registerFieldName(path, name string, seen map[string]struct{}) error {
	if strings.TrimSpace(name) == "" {
		return validationErrorf(path+".name", "required key is missing")
	}
	if _, dup := seen[name]; dup {
		return validationErrorf(path+".name", "Duplicate field name '%s'", name)
	}
	seen[name] = struct{}{}
	return nil
}

func validateFieldBody(resolver TypeResolver, path string, field types.FieldDecl) error {
	switch types.Endianness(field.Endian) {
	case "", types.EndianLittle, types.EndianBig:
	default:
		return validationErrorf(path+".endian", "must be 'le' or 'be', got '%s'", field.Endian)
	}
	if strings.TrimSpace(field.Type) == "" {
		return validationErrorf(path+".type", "required key is missing")
	}
	_, err := resolver.Resolve(path, field)
	return err
}

func validateOptionalBit(path string, field types.FieldDecl, presenceWidth int) error {
	if field.OptionalBit == nil {
		return nil
	}
	bit := *field.OptionalBit
	if presenceWidth == 0 {
		return validationErrorf(path+".optional_bit", "optional_bit requires a presence_map field in the message")
	}
	if bit < 0 {
		return validationErrorf(path+".optional_bit", "optional_bit must be a non-negative integer, got %d", bit)
	}
	if bit >= presenceWidth {
		return validationErrorf(path+".optional_bit", "optional_bit %d exceeds presence map width %d", bit, presenceWidth)
	}
	return nil
}
