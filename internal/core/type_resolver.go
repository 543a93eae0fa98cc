package core

import (
	"strconv"
	"strings"

	"market-codegen/internal/types"
)

var uintWidths = map[string]int{
	"u8":  1,
	"u16": 2,
	"u32": 4,
	"u64": 8,
}

// ResolvedType is the canonical kind, wire size, and enum linkage of a
// declared field type.
type ResolvedType struct {
	Kind      types.FieldKind
	Size      int
	EnumIndex int
}

// TypeResolver maps declared type strings to canonical descriptors,
// resolving enum references against a resolved enum catalog.
type TypeResolver struct {
	enums []types.Enum
	index map[string]int
}

func NewTypeResolver(enums []types.Enum, index map[string]int) TypeResolver {
	return TypeResolver{enums: enums, index: index}
}

// Resolve maps a field declaration to its resolved type.  The path
// qualifies any error with the field's location in the document.
func (r TypeResolver) Resolve(path string, field types.FieldDecl) (ResolvedType, error) {
	declared := strings.TrimSpace(field.Type)
	if width, ok := uintWidths[declared]; ok {
		resolved := ResolvedType{Kind: types.FieldKindUint, Size: width, EnumIndex: -1}
		if field.EnumType != "" {
			// A numeric type with an enum annotation keeps its own
			// wire size; the enum is symbolic only.
			idx, ok := r.index[field.EnumType]
			if !ok {
				return ResolvedType{}, validationErrorf(path+".enum_type", "enum '%s' does not exist", field.EnumType)
			}
			resolved.EnumIndex = idx
		}
		return resolved, nil
	}
	switch {
	case declared == "char":
		if field.Length == nil {
			return ResolvedType{Kind: types.FieldKindChar, Size: 1, EnumIndex: -1}, nil
		}
		if *field.Length <= 0 {
			return ResolvedType{}, validationErrorf(path+".length", "invalid size %d for char field", *field.Length)
		}
		return ResolvedType{Kind: types.FieldKindCharArray, Size: *field.Length, EnumIndex: -1}, nil
	case strings.HasPrefix(declared, "char[") && strings.HasSuffix(declared, "]"):
		size, err := strconv.Atoi(declared[len("char[") : len(declared)-1])
		if err != nil || size <= 0 {
			return ResolvedType{}, validationErrorf(path+".type", "invalid size in '%s' for char field", declared)
		}
		return ResolvedType{Kind: types.FieldKindCharArray, Size: size, EnumIndex: -1}, nil
	case declared == "enum":
		if field.EnumType == "" {
			return ResolvedType{}, validationErrorf(path+".type", "enum field requires an enum_type")
		}
		return r.resolveEnumRef(path, field.EnumType)
	case strings.HasPrefix(declared, "enum:"):
		name := strings.TrimSpace(declared[len("enum:"):])
		if name == "" {
			return ResolvedType{}, validationErrorf(path+".type", "enum field requires an enum name after 'enum:'")
		}
		return r.resolveEnumRef(path, name)
	default:
		return ResolvedType{}, validationErrorf(path+".type", "unknown type '%s'", field.Type)
	}
}

func (r TypeResolver) resolveEnumRef(path, name string) (ResolvedType, error) {
	idx, ok := r.index[name]
	if !ok {
		return ResolvedType{}, validationErrorf(path+".type", "enum '%s' does not exist", name)
	}
	return ResolvedType{Kind: types.FieldKindEnum, Size: r.enums[idx].Width, EnumIndex: idx}, nil
}
