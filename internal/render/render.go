// Package render defines the interface for rendering generated source
// artifacts from a resolved schema model.  Language backends live in
// subpackages and register themselves here at init time.
package render

import (
	"context"
	"fmt"

	"market-codegen/internal/types"
)

// Lang identifies a target language backend.
type Lang uint8

const (
	Unknown Lang = 0
	CPP     Lang = 1
)

func (l Lang) String() string {
	switch l {
	case CPP:
		return "cpp"
	default:
		return "unknown"
	}
}

// ParseLang maps a command-line language name to a Lang.
func ParseLang(name string) (Lang, error) {
	switch name {
	case "cpp", "c++":
		return CPP, nil
	default:
		return Unknown, fmt.Errorf("language %q is not supported", name)
	}
}

// Supported holds the registered language backends.
var Supported = map[Lang]Renderer{}

// Context carries everything a backend needs to render one artifact
// set: the protocol identity, the derived namespace, and the resolved
// model.  Backends never look back into the raw schema.
type Context struct {
	Protocol  string
	Version   string
	Namespace string
	Model     types.Model
}

// Renderer renders generated source artifacts for one target language.
type Renderer interface {
	// Artifacts lists the artifact file names this backend produces, in
	// the order they must be rendered and written.
	Artifacts() []string

	// Render produces the named artifact from the given context.
	Render(ctx context.Context, name string, rc Context) ([]byte, error)
}
