package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is the raw declaration tree of a wire-format schema file, decoded
// from YAML before any semantic checking has happened.
//
// The enum, group, and message catalogs are written as YAML mappings keyed
// by name, but they are decoded into slices that preserve document order,
// so compiling the same file twice produces byte-identical output.
// Duplicate names are kept during decoding; rejecting them is the
// validator's job, which reports them with a schema path instead of a
// parser position.
//
// Protocol and Version stay untyped here for the same reason: the
// validator owns the rules for which YAML types are acceptable.
type Schema struct {
	// Protocol is the protocol identifier, e.g. "cboe_boe".
	// Underscore-separated segments become nested namespaces in
	// generated code.
	Protocol any

	// Version is the protocol version, an integer or a string.
	Version any

	// Endian sets the default byte order for every field that does not
	// declare its own: "le" or "be".  Empty means little-endian.
	Endian string

	// Enums is the enum catalog in document order.
	Enums []EnumDecl

	// Groups is the optional top-level group catalog in document order.
	// Messages embed their own inline groups and never reference this
	// catalog by name; it is validated on its own.
	Groups []GroupDecl

	// Messages holds the message catalog in document order.  A nil
	// slice means the messages key was absent from the document; an
	// empty non-nil slice means it was declared empty.
	Messages []MessageDecl
}

// EnumDecl is one enum from the schema's enum catalog.  Value literals
// stay untyped because the schema accepts plain integers and hex strings
// such as "0x41".
type EnumDecl struct {
	Name   string
	Values []EnumValueDecl
}

type EnumValueDecl struct {
	Name  string
	Value any
}

// MessageDecl is one message from the schema's message catalog.
type MessageDecl struct {
	Name   string
	Fields []FieldDecl
	Groups []GroupDecl

	// GroupsDeclared records whether the message carried a groups key
	// at all, even an empty one.  A field literally named "groups" is
	// only a position marker when this is true.
	GroupsDeclared bool
}

// FieldDecl is a single field record as written in the schema.
//
// Example:
//
//	- name: Symbol
//	  type: char
//	  length: 8
//	  optional_bit: 2
type FieldDecl struct {
	// Name of the field, unique within its enclosing message or group.
	Name string `yaml:"name"`

	// Type is the declared type string: "u8", "u16", "u32", "u64",
	// "char", "char[N]", "enum", or "enum:Name".
	Type string `yaml:"type"`

	// Length is the byte length for char fields, an alternative to the
	// bracket form "char[N]".
	Length *int `yaml:"length"`

	// Endian overrides the schema-level byte order: "le" or "be".
	Endian string `yaml:"endian"`

	// Value is an optional literal baked into generated code.  Encoders
	// write it as the default and decoders verify it, which is how
	// dispatch tells message types apart on the wire.
	Value any `yaml:"value"`

	// OptionalBit is the bit index in the message's presence map that
	// gates this field.  Fields of a group use the enclosing message's
	// presence map.
	OptionalBit *int `yaml:"optional_bit"`

	// Purpose marks special roles.  "presence_map" designates the
	// message's presence bitmap field; at most one per message.
	Purpose string `yaml:"purpose"`

	// EnumType names a declared enum.  Combined with type "enum" it
	// makes the field enum-typed; combined with a numeric type it only
	// annotates the field for display.
	EnumType string `yaml:"enum_type"`
}

// GroupDecl is a repeating group: an ordered field list repeated a number
// of times given at runtime by a sibling field of the enclosing message.
type GroupDecl struct {
	Name string `yaml:"name"`

	// CountField names the message field whose decoded value supplies
	// the repetition count.
	CountField string `yaml:"count_field"`

	Fields []FieldDecl `yaml:"fields"`
}

// PresenceMapPurpose is the Purpose value that marks a field as the
// message's presence bitmap.
const PresenceMapPurpose = "presence_map"

// GroupsMarkerName is the reserved field name that marks where a
// message's repeating groups sit in the wire layout.
const GroupsMarkerName = "groups"

func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	node = resolvedNode(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema root: expected a mapping, got %s", nodeKindName(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := resolvedNode(node.Content[i+1])
		var err error
		switch key.Value {
		case "protocol":
			err = val.Decode(&s.Protocol)
		case "version":
			err = val.Decode(&s.Version)
		case "endian":
			err = val.Decode(&s.Endian)
		case "enums":
			s.Enums, err = decodeEnumCatalog(val)
		case "groups":
			s.Groups, err = decodeGroupCatalog(val)
		case "messages":
			s.Messages, err = decodeMessageCatalog(val)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeEnumCatalog(node *yaml.Node) ([]EnumDecl, error) {
	if isNullNode(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("enums: expected a mapping of enum names, got %s", nodeKindName(node.Kind))
	}
	enums := make([]EnumDecl, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := resolvedNode(node.Content[i+1])
		decl := EnumDecl{Name: key.Value}
		if !isNullNode(val) {
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("enums.%s: expected a mapping of value names, got %s", key.Value, nodeKindName(val.Kind))
			}
			decl.Values = make([]EnumValueDecl, 0, len(val.Content)/2)
			for j := 0; j+1 < len(val.Content); j += 2 {
				var raw any
				if err := resolvedNode(val.Content[j+1]).Decode(&raw); err != nil {
					return nil, err
				}
				decl.Values = append(decl.Values, EnumValueDecl{Name: val.Content[j].Value, Value: raw})
			}
		}
		enums = append(enums, decl)
	}
	return enums, nil
}

func decodeGroupCatalog(node *yaml.Node) ([]GroupDecl, error) {
	if isNullNode(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("groups: expected a mapping of group names, got %s", nodeKindName(node.Kind))
	}
	groups := make([]GroupDecl, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := resolvedNode(node.Content[i+1])
		var decl GroupDecl
		if !isNullNode(val) {
			if err := val.Decode(&decl); err != nil {
				return nil, err
			}
		}
		// The mapping key is the group's identity, even if the body
		// carries a name of its own.
		decl.Name = key.Value
		groups = append(groups, decl)
	}
	return groups, nil
}

func decodeMessageCatalog(node *yaml.Node) ([]MessageDecl, error) {
	if isNullNode(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("messages: expected a mapping of message names, got %s", nodeKindName(node.Kind))
	}
	messages := make([]MessageDecl, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := resolvedNode(node.Content[i+1])
		decl := MessageDecl{Name: key.Value}
		if !isNullNode(val) {
			if err := decl.decodeBody(val); err != nil {
				return nil, err
			}
		}
		messages = append(messages, decl)
	}
	return messages, nil
}

func (m *MessageDecl) decodeBody(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("messages.%s: expected a mapping, got %s", m.Name, nodeKindName(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := resolvedNode(node.Content[i+1])
		switch key.Value {
		case "fields":
			if isNullNode(val) {
				continue
			}
			if err := val.Decode(&m.Fields); err != nil {
				return err
			}
		case "groups":
			m.GroupsDeclared = true
			if isNullNode(val) {
				continue
			}
			if err := val.Decode(&m.Groups); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolvedNode(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
