package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-codegen/internal/types"
)

func newTestTypeResolver(t *testing.T) TypeResolver {
	t.Helper()
	enums, index, err := NewEnumResolver().ResolveAll([]types.EnumDecl{
		{Name: "Side", Values: []types.EnumValueDecl{{Name: "Buy", Value: 0x31}, {Name: "Sell", Value: 0x32}}},
		{Name: "Wide", Values: []types.EnumValueDecl{{Name: "Big", Value: 70000}}},
	})
	require.NoError(t, err)
	return NewTypeResolver(enums, index)
}

func TestTypeResolverResolvesDeclaredTypes(t *testing.T) {
	resolver := newTestTypeResolver(t)

	tests := []struct {
		name     string
		field    types.FieldDecl
		wantKind types.FieldKind
		wantSize int
		wantEnum int
	}{
		{name: "u8", field: types.FieldDecl{Name: "F", Type: "u8"}, wantKind: types.FieldKindUint, wantSize: 1, wantEnum: -1},
		{name: "u16", field: types.FieldDecl{Name: "F", Type: "u16"}, wantKind: types.FieldKindUint, wantSize: 2, wantEnum: -1},
		{name: "u32", field: types.FieldDecl{Name: "F", Type: "u32"}, wantKind: types.FieldKindUint, wantSize: 4, wantEnum: -1},
		{name: "u64", field: types.FieldDecl{Name: "F", Type: "u64"}, wantKind: types.FieldKindUint, wantSize: 8, wantEnum: -1},
		{name: "single char", field: types.FieldDecl{Name: "F", Type: "char"}, wantKind: types.FieldKindChar, wantSize: 1, wantEnum: -1},
		{name: "char with length key", field: types.FieldDecl{Name: "F", Type: "char", Length: intp(20)}, wantKind: types.FieldKindCharArray, wantSize: 20, wantEnum: -1},
		{name: "char bracket form", field: types.FieldDecl{Name: "F", Type: "char[8]"}, wantKind: types.FieldKindCharArray, wantSize: 8, wantEnum: -1},
		{name: "enum with enum_type", field: types.FieldDecl{Name: "F", Type: "enum", EnumType: "Side"}, wantKind: types.FieldKindEnum, wantSize: 1, wantEnum: 0},
		{name: "inline enum reference", field: types.FieldDecl{Name: "F", Type: "enum:Wide"}, wantKind: types.FieldKindEnum, wantSize: 4, wantEnum: 1},
		{name: "numeric with enum annotation keeps numeric size", field: types.FieldDecl{Name: "F", Type: "u16", EnumType: "Wide"}, wantKind: types.FieldKindUint, wantSize: 2, wantEnum: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := resolver.Resolve("messages.M.fields[0]", tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, resolved.Kind)
			assert.Equal(t, tt.wantSize, resolved.Size)
			assert.Equal(t, tt.wantEnum, resolved.EnumIndex)
		})
	}
}

func TestTypeResolverRejectsBadTypes(t *testing.T) {
	resolver := newTestTypeResolver(t)

	tests := []struct {
		name     string
		field    types.FieldDecl
		wantPath string
		wantMsg  string
	}{
		{
			name:     "char zero size",
			field:    types.FieldDecl{Name: "F", Type: "char[0]"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "invalid size",
		},
		{
			name:     "char negative size",
			field:    types.FieldDecl{Name: "F", Type: "char[-3]"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "invalid size",
		},
		{
			name:     "char unparseable size",
			field:    types.FieldDecl{Name: "F", Type: "char[abc]"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "invalid size",
		},
		{
			name:     "char zero length key",
			field:    types.FieldDecl{Name: "F", Type: "char", Length: intp(0)},
			wantPath: "messages.M.fields[0].length",
			wantMsg:  "invalid size",
		},
		{
			name:     "char negative length key",
			field:    types.FieldDecl{Name: "F", Type: "char", Length: intp(-3)},
			wantPath: "messages.M.fields[0].length",
			wantMsg:  "invalid size",
		},
		{
			name:     "undeclared inline enum",
			field:    types.FieldDecl{Name: "F", Type: "enum:Ghost"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "enum 'Ghost' does not exist",
		},
		{
			name:     "undeclared enum annotation",
			field:    types.FieldDecl{Name: "F", Type: "u8", EnumType: "Ghost"},
			wantPath: "messages.M.fields[0].enum_type",
			wantMsg:  "enum 'Ghost' does not exist",
		},
		{
			name:     "bare enum without enum_type",
			field:    types.FieldDecl{Name: "F", Type: "enum"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "requires an enum_type",
		},
		{
			name:     "empty inline enum name",
			field:    types.FieldDecl{Name: "F", Type: "enum:"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "requires an enum name",
		},
		{
			name:     "unknown type",
			field:    types.FieldDecl{Name: "F", Type: "f64"},
			wantPath: "messages.M.fields[0].type",
			wantMsg:  "unknown type 'f64'",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve("messages.M.fields[0]", tt.field)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantPath, verr.Path)
			assert.Contains(t, verr.Message, tt.wantMsg)
		})
	}
}
