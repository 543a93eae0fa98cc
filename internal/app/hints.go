package app

import (
	"fmt"
	"os"
	"strings"

	"market-codegen/internal/types"
)

// checkSchemaHints returns authoring hints for constructs that are
// valid but probably not what the author meant.
func checkSchemaHints(schema types.Schema) []string {
	var hints []string
	if strings.TrimSpace(schema.Endian) == string(types.EndianLittle) {
		hints = append(hints, "hint: endian: le is already the default; you can omit the key")
	}
	for _, message := range schema.Messages {
		if len(message.Groups) == 0 {
			continue
		}
		if !hasGroupsMarker(message) {
			hints = append(hints, fmt.Sprintf(
				"hint: message '%s' declares groups without a '%s' marker field; elements are placed after the last field",
				message.Name, types.GroupsMarkerName,
			))
		}
		for _, group := range message.Groups {
			if group.CountField == "" {
				hints = append(hints, fmt.Sprintf(
					"hint: group '%s' in message '%s' has no count_field; decoders cannot recover the element count",
					group.Name, message.Name,
				))
			}
		}
	}
	return hints
}

func hasGroupsMarker(message types.MessageDecl) bool {
	for _, field := range message.Fields {
		if field.Name == types.GroupsMarkerName {
			return true
		}
	}
	return false
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
