// Package cpp renders the C++20 artifact set for a resolved schema
// model: message structs, an encoder, a decoder, and a dispatch header,
// plus a self-contained runtime support section so the generated files
// build without any hand-written companion library.
package cpp

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"market-codegen/internal/render"
)

//go:embed templates/*
var files embed.FS

var templates *template.Template

// artifacts lists the generated file names in render order.  Headers
// come before their implementation files so a failed render aborts
// before any orphan .cpp is written.
var artifacts = []string{
	"messages.hpp",
	"messages.cpp",
	"encoder.hpp",
	"encoder.cpp",
	"decoder.hpp",
	"decoder.cpp",
	"handler.hpp",
}

func init() {
	t, err := template.New("").Funcs(
		template.FuncMap{
			"fieldCtx": newFieldCtx,
		},
	).ParseFS(files, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}
	templates = t

	if _, ok := render.Supported[render.CPP]; ok {
		panic(fmt.Sprintf("%v was already registered", render.CPP))
	}
	render.Supported[render.CPP] = Renderer{}
}

// Renderer implements render.Renderer for C++.
type Renderer struct{}

// Artifacts returns the names of the seven generated files.
func (r Renderer) Artifacts() []string {
	out := make([]string, len(artifacts))
	copy(out, artifacts)
	return out
}

// Render produces the named artifact from the resolved model.
func (r Renderer) Render(ctx context.Context, name string, rc render.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	known := false
	for _, a := range artifacts {
		if a == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown artifact %q", name)
	}

	data, err := newFileData(rc)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := templates.ExecuteTemplate(buf, name+".tmpl", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
