package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"market-codegen/internal/core"
	"market-codegen/internal/render"
	"market-codegen/internal/shared"

	_ "market-codegen/internal/render/cpp"
)

// Generate compiles one schema and writes the full artifact set to the
// output directory.  Artifacts render and write sequentially; the
// first failure aborts and leaves earlier files on disk.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	schemaPath := strings.TrimSpace(req.SchemaPath)
	if schemaPath == "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema path is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	lang, err := parseLang(req.Lang)
	if err != nil {
		return GenerateResult{}, err
	}

	schema, err := s.SchemaLoader.LoadSchema(schemaPath)
	if err != nil {
		return GenerateResult{}, err
	}
	validated, err := core.NewSchemaValidator().Validate(ctx, schema)
	if err != nil {
		return GenerateResult{}, err
	}
	model, err := core.NewLayoutBuilder().Build(ctx, validated)
	if err != nil {
		return GenerateResult{}, err
	}

	renderer, ok := render.Supported[lang]
	if !ok {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("language %v has no registered backend", lang))
	}
	rc := render.Context{
		Protocol:  validated.Protocol(),
		Version:   shared.FormatVersion(validated.Version()),
		Namespace: shared.Namespace(validated.Protocol(), validated.Version()),
		Model:     model,
	}
	artifacts := renderer.Artifacts()
	for _, name := range artifacts {
		data, err := renderer.Render(ctx, name, rc)
		if err != nil {
			return GenerateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to render %s", name)).
				WithCause(err)
		}
		if err := s.Artifacts.WriteArtifact(outputDir, name, data); err != nil {
			return GenerateResult{}, err
		}
	}

	log.Ctx(ctx).Debug().
		Str("schema", schemaPath).
		Str("out", outputDir).
		Int("artifacts", len(artifacts)).
		Msg("artifacts generated")
	return GenerateResult{
		Protocol:  validated.Protocol(),
		Namespace: rc.Namespace,
		OutputDir: outputDir,
		Artifacts: artifacts,
	}, nil
}

// GenerateBatch discovers every schema below SchemaDir and compiles
// them concurrently, each into its own subdirectory of OutputDir named
// after the schema file.  The first failure cancels the remaining
// compilations.
func (s Service) GenerateBatch(ctx context.Context, req GenerateBatchRequest) (GenerateBatchResult, error) {
	schemaDir := strings.TrimSpace(req.SchemaDir)
	if schemaDir == "" {
		return GenerateBatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema directory is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return GenerateBatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	if _, err := parseLang(req.Lang); err != nil {
		return GenerateBatchResult{}, err
	}
	paths, err := s.SchemaDir.FindSchemas(schemaDir)
	if err != nil {
		return GenerateBatchResult{}, err
	}
	if len(paths) == 0 {
		return GenerateBatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no schema files found")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]GenerateResult, 0, len(paths))
	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	errCh := make(chan error, 1)

	for _, path := range paths {
		path := path
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Generate(ctx, GenerateRequest{
				SchemaPath: path,
				OutputDir:  filepath.Join(outputDir, schemaBase(path)),
				Lang:       req.Lang,
			})
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				cancel()
				return
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}()
	}
	wg.Wait()
	select {
	case err := <-errCh:
		return GenerateBatchResult{}, err
	default:
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].OutputDir < results[j].OutputDir
	})
	return GenerateBatchResult{Schemas: len(paths), Generated: results}, nil
}

func parseLang(name string) (render.Lang, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return render.CPP, nil
	}
	lang, err := render.ParseLang(trimmed)
	if err != nil {
		return render.Unknown, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(err.Error())
	}
	return lang, nil
}

// schemaBase strips the extension from a schema file name for use as
// its per-schema output subdirectory.
func schemaBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
