package cpp

import (
	"fmt"
	"strings"

	"market-codegen/internal/render"
	"market-codegen/internal/types"
)

// fileData is the root template value; one instance renders every
// artifact for a schema.
type fileData struct {
	Protocol  string
	Version   string
	Namespace string
	Dispatch  string
	Enums     []enumData
	Messages  []messageData

	// HasText reports whether any field is a char or char array, so
	// templates only emit the text helpers when something uses them.
	HasText bool
}

type enumData struct {
	Name       string
	Underlying string
	Values     []enumValueData
}

type enumValueData struct {
	Name    string
	Literal string
}

// messageData splits the resolved field list at the group insert point
// so templates emit lead fields, repeated groups, and tail fields in
// wire order.
type messageData struct {
	Name     string
	Presence string
	Lead     []fieldData
	Tail     []fieldData
	Groups   []groupData
}

type groupData struct {
	Name       string
	Struct     string
	Member     string
	CountField string
	Fields     []fieldData
}

// fieldData carries the C++ spellings a template needs for one field.
type fieldData struct {
	Name string

	// CppType is the struct member type.  UintType is the raw wire
	// integer type used by loads, stores, and literal checks; empty for
	// char arrays, which move through memcpy instead.
	CppType  string
	UintType string

	// Init is the braced member initializer, "{}" unless the field
	// carries a literal value.  Value is the literal expression the
	// decoder verifies, empty when there is nothing to check.
	Init  string
	Value string

	// Annot names the enum a numeric field is annotated with, used for
	// the member comment only.
	Annot string

	Kind     string
	Size     int
	Endian   string
	Optional bool
	Bit      int
}

// fieldCtx bundles a field with the surrounding expressions a wire
// template needs: the object holding the field, the presence bitmap
// expression of the enclosing message, the JSON separator variable,
// and the indentation of the enclosing block.
type fieldCtx struct {
	F        fieldData
	Dst      string
	Presence string
	Sep      string
	Ind      string
}

func newFieldCtx(f fieldData, dst, presence, sep, ind string) fieldCtx {
	return fieldCtx{F: f, Dst: dst, Presence: presence, Sep: sep, Ind: ind}
}

func newFileData(rc render.Context) (fileData, error) {
	data := fileData{
		Protocol:  rc.Protocol,
		Version:   rc.Version,
		Namespace: rc.Namespace,
		Dispatch:  dispatchName(rc.Protocol),
	}

	for _, e := range rc.Model.Enums {
		ed, err := newEnumData(e)
		if err != nil {
			return fileData{}, err
		}
		data.Enums = append(data.Enums, ed)
	}
	for _, m := range rc.Model.Messages {
		md, err := newMessageData(m, rc.Model)
		if err != nil {
			return fileData{}, err
		}
		data.Messages = append(data.Messages, md)

		for _, f := range md.Lead {
			data.HasText = data.HasText || isText(f)
		}
		for _, f := range md.Tail {
			data.HasText = data.HasText || isText(f)
		}
		for _, g := range md.Groups {
			for _, f := range g.Fields {
				data.HasText = data.HasText || isText(f)
			}
		}
	}
	return data, nil
}

func isText(f fieldData) bool {
	return f.Kind == string(types.FieldKindChar) || f.Kind == string(types.FieldKindCharArray)
}

// dispatchName derives the dispatch function name from the protocol
// identifier: the segment after the last underscore, so "cboe_boe"
// dispatches through dispatch_boe.
func dispatchName(protocol string) string {
	parts := strings.Split(protocol, "_")
	return "dispatch_" + parts[len(parts)-1]
}

func newEnumData(e types.Enum) (enumData, error) {
	underlying, err := uintName(e.Width)
	if err != nil {
		return enumData{}, fmt.Errorf("enum %s: %w", e.Name, err)
	}
	d := enumData{
		Name:       e.Name,
		Underlying: underlying,
	}
	for _, v := range e.Values {
		d.Values = append(d.Values, enumValueData{
			Name:    v.Name,
			Literal: fmt.Sprintf("%#x", v.Value),
		})
	}
	return d, nil
}

func newMessageData(m types.Message, model types.Model) (messageData, error) {
	d := messageData{
		Name:     m.Name,
		Presence: m.PresenceField,
	}

	fields := make([]fieldData, 0, len(m.Fields))
	for _, f := range m.Fields {
		fd, err := newFieldData(f, model)
		if err != nil {
			return messageData{}, fmt.Errorf("message %s: %w", m.Name, err)
		}
		fields = append(fields, fd)
	}
	d.Lead = fields[:m.GroupInsertIndex]
	d.Tail = fields[m.GroupInsertIndex:]

	for _, g := range m.Groups {
		gd := groupData{
			Name:       g.Name,
			Struct:     m.Name + g.Name,
			Member:     g.Container,
			CountField: g.CountField,
		}
		for _, f := range g.Fields {
			fd, err := newFieldData(f, model)
			if err != nil {
				return messageData{}, fmt.Errorf("message %s group %s: %w", m.Name, g.Name, err)
			}
			gd.Fields = append(gd.Fields, fd)
		}
		d.Groups = append(d.Groups, gd)
	}
	return d, nil
}

func newFieldData(f types.Field, model types.Model) (fieldData, error) {
	d := fieldData{
		Name:     f.Name,
		Kind:     string(f.Kind),
		Size:     f.Size,
		Endian:   string(f.Endian),
		Optional: f.Optional,
		Bit:      f.OptionalBit,
	}

	switch f.Kind {
	case types.FieldKindUint:
		n, err := uintName(f.Size)
		if err != nil {
			return fieldData{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		d.CppType = n
		d.UintType = n
		if f.EnumIndex >= 0 {
			d.Annot = model.Enums[f.EnumIndex].Name
		}
	case types.FieldKindChar:
		d.CppType = "char"
		d.UintType = "uint8_t"
	case types.FieldKindCharArray:
		d.CppType = fmt.Sprintf("std::array<char, %d>", f.Size)
	case types.FieldKindEnum:
		n, err := uintName(f.Size)
		if err != nil {
			return fieldData{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		d.CppType = model.Enums[f.EnumIndex].Name
		d.UintType = n
	default:
		return fieldData{}, fmt.Errorf("field %s: unknown kind %q", f.Name, f.Kind)
	}

	d.Init = "{}"
	if f.HasValue && f.Kind != types.FieldKindCharArray {
		lit := cppLiteral(f.Value)
		d.Init = "{" + lit + "}"
		d.Value = lit
	}
	return d, nil
}

// uintName maps a byte width to the fixed-width C++ integer type.
func uintName(size int) (string, error) {
	switch size {
	case 1:
		return "uint8_t", nil
	case 2:
		return "uint16_t", nil
	case 4:
		return "uint32_t", nil
	case 8:
		return "uint64_t", nil
	default:
		return "", fmt.Errorf("no integer type covers %d bytes", size)
	}
}

// cppLiteral renders a schema literal value as a C++ expression.
// Integers become hex literals, single characters become char
// literals, and hex strings pass through untouched.
func cppLiteral(v any) string {
	switch val := v.(type) {
	case int:
		return fmt.Sprintf("%#x", val)
	case int64:
		return fmt.Sprintf("%#x", val)
	case uint64:
		return fmt.Sprintf("%#x", val)
	case string:
		if strings.HasPrefix(val, "0x") || strings.HasPrefix(val, "0X") {
			return val
		}
		if len(val) == 1 {
			return charLiteral(val[0])
		}
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

func charLiteral(c byte) string {
	switch c {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	default:
		return fmt.Sprintf("'%c'", c)
	}
}
