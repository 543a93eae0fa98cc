package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"market-codegen/internal/app"
)

type generateOptions struct {
	Schema    string
	SchemaDir string
	OutputDir string
	Lang      string
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile a schema into codec sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema file path")
	cmd.Flags().StringVar(&opts.SchemaDir, "schema-dir", "", "Directory of schemas to compile as a batch")
	cmd.Flags().StringVar(&opts.OutputDir, "out", "", "Output directory for generated sources")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "Target language (default cpp)")
	_ = viper.BindPFlag("schema", cmd.Flags().Lookup("schema"))
	_ = viper.BindPFlag("schema_dir", cmd.Flags().Lookup("schema-dir"))
	_ = viper.BindPFlag("out", cmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("lang", cmd.Flags().Lookup("lang"))
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	service := newAppService()
	outputDir := resolveString(cmd, opts.OutputDir, "out", "out")
	lang := resolveString(cmd, opts.Lang, "lang", "lang")

	if schemaDir := resolveString(cmd, opts.SchemaDir, "schema_dir", "schema-dir"); schemaDir != "" {
		result, err := service.GenerateBatch(ctx, app.GenerateBatchRequest{
			SchemaDir: schemaDir,
			OutputDir: outputDir,
			Lang:      lang,
		})
		if err != nil {
			return err
		}
		for _, generated := range result.Generated {
			fmt.Printf("validated: %s\n", generated.Protocol)
			fmt.Printf("generated %d artifacts to %s\n", len(generated.Artifacts), generated.OutputDir)
		}
		fmt.Printf("compiled %d schemas\n", result.Schemas)
		return nil
	}

	schema := resolveString(cmd, opts.Schema, "schema", "schema")
	if schema == "" {
		schema = defaultSchemaPath()
	}
	result, err := service.Generate(ctx, app.GenerateRequest{
		SchemaPath: schema,
		OutputDir:  outputDir,
		Lang:       lang,
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s\n", result.Protocol)
	fmt.Printf("generated %d artifacts to %s\n", len(result.Artifacts), result.OutputDir)
	return nil
}
