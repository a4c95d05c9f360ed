package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-smartexit/pkg/render"
)

var (
	previewFormat string
	previewTitle  string
	previewOut    string
)

var previewCmd = &cobra.Command{
	Use:   "preview <form-config>",
	Short: "Render a read-only preview of a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := loadSession(args[0])
		if err != nil {
			return err
		}
		themeCfg, err := themeConfig()
		if err != nil {
			return err
		}
		out, _, err := session.Preview(cmd.Context(), previewFormat, render.RenderOptions{
			Title: previewTitle,
			Theme: themeCfg,
		}, nil)
		if err != nil {
			return err
		}
		return writeOutput(previewOut, out)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewFormat, "format", "html", "renderer to use (html or text)")
	previewCmd.Flags().StringVar(&previewTitle, "title", "", "page title")
	previewCmd.Flags().StringVarP(&previewOut, "output", "o", "", "output file (stdout if empty)")
	rootCmd.AddCommand(previewCmd)
}
