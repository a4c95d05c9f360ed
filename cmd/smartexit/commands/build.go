package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-smartexit/pkg/editor/tui"
	"github.com/goliatone/go-smartexit/pkg/export"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/render"
)

var (
	buildFrom string
	buildOut  string
	buildSave bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a form interactively in the terminal",
	Long: `Build opens a menu driven form builder. Fields can be added, edited,
removed, previewed and exported. On Done the form is written to
form-config.json in the output directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		session, err := loadSession(buildFrom)
		if err != nil {
			return err
		}

		preview := func(ctx context.Context, _ []model.Field) (string, error) {
			out, _, err := session.Preview(ctx, "text", render.RenderOptions{}, nil)
			return string(out), err
		}
		exportJSON := func(_ context.Context, fields []model.Field) (string, error) {
			out, err := export.JSON(fields)
			return string(out), err
		}

		b := tui.NewBuilder(session.Store(),
			tui.WithPreview(preview),
			tui.WithExport(exportJSON),
		)
		if err := b.Run(ctx); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted, nothing written")
				return nil
			}
			return err
		}

		for _, issue := range session.Validate() {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", issue.Error())
		}
		path, err := export.WriteFile(buildOut, session.Fields())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", path)

		if buildSave {
			result, err := session.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildFrom, "from", "", "start from an existing form-config file (JSON or YAML)")
	buildCmd.Flags().StringVar(&buildOut, "out", ".", "directory to write form-config.json into")
	buildCmd.Flags().BoolVar(&buildSave, "save", false, "save the form after writing it")
	rootCmd.AddCommand(buildCmd)
}
