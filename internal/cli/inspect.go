package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"market-codegen/internal/app"
)

type inspectOptions struct {
	Schema string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report the resolved wire layout of a schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema file path")
	_ = viper.BindPFlag("schema", cmd.Flags().Lookup("schema"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	schema := resolveString(cmd, opts.Schema, "schema", "schema")
	if schema == "" {
		schema = defaultSchemaPath()
	}
	result, err := service.Inspect(ctx, app.InspectRequest{
		SchemaPath: schema,
	})
	if err != nil {
		return err
	}

	fmt.Printf("protocol: %s v%s\n", result.Protocol, result.Version)
	fmt.Printf("namespace: %s\n", result.Namespace)
	fmt.Println("enums:")
	for _, summary := range result.Enums {
		fmt.Printf("- %s: %d values, %d-byte\n", summary.Name, summary.Values, summary.Width)
	}
	fmt.Println("messages:")
	for _, summary := range result.Messages {
		line := fmt.Sprintf("- %s: %d fields, %d fixed bytes", summary.Name, summary.Fields, summary.FixedBytes)
		if summary.Groups > 0 {
			line += fmt.Sprintf(", %d groups", summary.Groups)
		}
		if summary.PresenceWidth > 0 {
			line += fmt.Sprintf(", %d-bit presence map", summary.PresenceWidth)
		}
		fmt.Println(line)
	}
	return nil
}
