package types

// Model is the fully resolved layout produced from a validated schema.
// It is self-contained: every name reference has been resolved to an
// index, so consumers never look back into the raw schema.  A Model is
// built once per compilation and treated as read-only afterwards.
type Model struct {
	Enums []Enum

	// EnumIndex maps an enum name to its position in Enums.
	EnumIndex map[string]int

	Messages []Message
}

// Enum is a resolved enumeration with its inferred underlying width.
type Enum struct {
	Name   string
	Values []EnumValue

	// Width is the smallest of 1, 2, 4, or 8 bytes whose unsigned
	// range covers Max.  An enum without values has width 1 and max 0.
	Width int
	Max   uint64
}

type EnumValue struct {
	Name  string
	Value uint64
}

// Message is a resolved message layout.
type Message struct {
	Name   string
	Fields []Field
	Groups []Group

	// PresenceField names the field marked as the presence bitmap,
	// empty when the message has none.  PresenceIndex is its position
	// in Fields, -1 when absent.  PresenceWidth is the bitmap width in
	// bits, 0 when absent.
	PresenceField string
	PresenceIndex int
	PresenceWidth int

	// FixedBytes is the guaranteed wire footprint: the summed sizes of
	// every field without an optional bit.  Optional fields and groups
	// are excluded because their presence is only known at runtime.
	FixedBytes int

	HasOptional bool
	HasGroups   bool

	// GroupInsertIndex is the position in Fields where the repeating
	// groups sit in the wire layout.  len(Fields) when the schema did
	// not place them explicitly with a marker field.
	GroupInsertIndex int
}

// Field is a resolved field layout.
type Field struct {
	Name   string
	Kind   FieldKind
	Size   int
	Endian Endianness

	// Value is the literal baked into generated code, nil when the
	// field has none.  Encoders emit it as the default and decoders
	// verify it.
	Value    any
	HasValue bool

	Optional    bool
	OptionalBit int

	// PresenceMap marks the message's presence bitmap field.
	PresenceMap bool

	// EnumIndex points into Model.Enums for enum-typed fields and for
	// numeric fields annotated with an enum for display.  -1 otherwise.
	EnumIndex int
}

// Group is a resolved repeating group.
type Group struct {
	Name string

	// CountField names the message field carrying the repetition
	// count; CountFieldIndex is its position in the message's Fields,
	// -1 when the group declares no count field.
	CountField      string
	CountFieldIndex int

	// Container is the lower-cased group name, used by backends to
	// name the runtime container holding repeated elements.
	Container string

	Fields []Field
}
