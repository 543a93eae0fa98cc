package core

import (
	"fmt"
	"strconv"
	"strings"

	"market-codegen/internal/types"
)

// EnumResolver turns enum declarations into resolved enums with an
// inferred underlying width.
type EnumResolver struct{}

func NewEnumResolver() EnumResolver {
	return EnumResolver{}
}

// ResolveAll resolves the enum catalog in declaration order and builds
// the name index.  It rejects duplicate enum names, duplicate value
// names, duplicate values, malformed literals, and negative values.
func (r EnumResolver) ResolveAll(decls []types.EnumDecl) ([]types.Enum, map[string]int, error) {
	enums := make([]types.Enum, 0, len(decls))
	index := make(map[string]int, len(decls))
	for _, decl := range decls {
		if _, exists := index[decl.Name]; exists {
			return nil, nil, validationErrorf("enums."+decl.Name, "Duplicate enum name '%s'", decl.Name)
		}
		resolved, err := r.resolve(decl)
		if err != nil {
			return nil, nil, err
		}
		index[decl.Name] = len(enums)
		enums = append(enums, resolved)
	}
	return enums, index, nil
}

func (r EnumResolver) resolve(decl types.EnumDecl) (types.Enum, error) {
	enum := types.Enum{
		Name:   decl.Name,
		Values: make([]types.EnumValue, 0, len(decl.Values)),
	}
	names := make(map[string]struct{}, len(decl.Values))
	values := make(map[uint64]struct{}, len(decl.Values))
	for _, value := range decl.Values {
		path := fmt.Sprintf("enums.%s.%s", decl.Name, value.Name)
		if _, dup := names[value.Name]; dup {
			return types.Enum{}, validationErrorf(path, "Duplicate value name '%s'", value.Name)
		}
		names[value.Name] = struct{}{}
		parsed, err := parseEnumLiteral(path, value.Value)
		if err != nil {
			return types.Enum{}, err
		}
		if _, dup := values[parsed]; dup {
			return types.Enum{}, validationErrorf(path, "Duplicate value %d", parsed)
		}
		values[parsed] = struct{}{}
		if parsed > enum.Max {
			enum.Max = parsed
		}
		enum.Values = append(enum.Values, types.EnumValue{Name: value.Name, Value: parsed})
	}
	enum.Width = enumWidth(enum.Max)
	return enum, nil
}

func parseEnumLiteral(path string, raw any) (uint64, error) {
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, validationErrorf(path, "negative values are not allowed, got %d", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, validationErrorf(path, "negative values are not allowed, got %d", v)
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if !strings.HasPrefix(trimmed, "0x") && !strings.HasPrefix(trimmed, "0X") {
			return 0, validationErrorf(path, "string values must be hex literals like 0x41, got '%s'", v)
		}
		parsed, err := strconv.ParseUint(trimmed[2:], 16, 64)
		if err != nil {
			return 0, validationErrorf(path, "invalid hex literal '%s'", v)
		}
		return parsed, nil
	default:
		return 0, validationErrorf(path, "value must be an integer or a hex string, got %T", raw)
	}
}

// enumWidth infers the smallest standard unsigned width, in bytes, whose
// range covers the largest declared value.
func enumWidth(max uint64) int {
	switch {
	case max <= 0xFF:
		return 1
	case max <= 0xFFFF:
		return 2
	case max <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}
