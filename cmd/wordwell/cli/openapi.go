package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordwell/wordwell/internal/openapi"
)

func newOpenAPICmd() *cobra.Command {
	var (
		outputFile string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate the OpenAPI specification",
		Long:  "Generate the OpenAPI 3.1 specification for the word API as JSON or YAML.",
		Example: `  wordwell openapi                     # JSON to stdout
  wordwell openapi --format yaml -o openapi.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpenAPI(cmd, outputFile, format)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write spec to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	return cmd
}

func runOpenAPI(cmd *cobra.Command, outputFile, format string) error {
	doc := openapi.Generate()

	var out []byte
	var err error
	switch strings.ToLower(format) {
	case "json":
		out, err = json.MarshalIndent(doc, "", "  ")
	case "yaml", "yml":
		out, err = openapi.MarshalYAML(doc)
	default:
		return fmt.Errorf("unknown format %q, use json or yaml", format)
	}
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, out, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outputFile, err)
		}
		fmt.Printf("Wrote %s\n", outputFile)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
