// Package shared provides common utility functions used across multiple
// packages in the market-codegen codebase.
package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// ContainerName derives the runtime container identifier for a repeating
// group from its declared name by lowercasing it.
func ContainerName(group string) string {
	return strings.ToLower(strings.TrimSpace(group))
}

// FormatVersion renders a schema version, which may be written as an
// integer or a string, in its canonical text form.
func FormatVersion(version any) string {
	switch v := version.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Namespace converts a protocol identifier and version into the scoped
// namespace used by generated code: underscore-separated segments joined
// with "::" and a trailing version segment.
//
// Namespace("cboe_boe", 3) returns "cboe::boe::v3".
func Namespace(protocol string, version any) string {
	parts := strings.Split(protocol, "_")
	return strings.Join(parts, "::") + "::v" + FormatVersion(version)
}
