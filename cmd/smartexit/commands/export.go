package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-smartexit/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <form-config>",
	Short: "Convert a form between JSON, YAML and its submission schema",
	Long: `Export reads a form-config file and writes it back out. The json format
strips field ids and matches form-config.json byte for byte. The schema
format writes the OpenAPI schema of a submission to the form.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := readForm(args[0])
		if err != nil {
			return err
		}

		var out []byte
		switch exportFormat {
		case "json":
			out, err = export.JSON(fields)
		case "yaml":
			out, err = export.YAML(fields)
		case "schema":
			out, err = json.MarshalIndent(export.SubmissionSchema(fields), "", "  ")
		default:
			return fmt.Errorf("unknown format %q (json, yaml or schema)", exportFormat)
		}
		if err != nil {
			return err
		}
		if out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		return writeOutput(exportOut, out)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, yaml or schema)")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (stdout if empty)")
	rootCmd.AddCommand(exportCmd)
}
