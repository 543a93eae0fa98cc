package types

type FieldKind string

const (
	FieldKindUint      FieldKind = "uint"
	FieldKindChar      FieldKind = "char"
	FieldKindCharArray FieldKind = "char_array"
	FieldKindEnum      FieldKind = "enum"
)

type Endianness string

const (
	EndianLittle Endianness = "le"
	EndianBig    Endianness = "be"
)
