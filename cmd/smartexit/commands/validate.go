package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-smartexit/pkg/export"
)

var validateCmd = &cobra.Command{
	Use:   "validate <form-config>",
	Short: "Check a form against the document schema and the builder rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := readForm(args[0])
		if err != nil {
			return err
		}
		issues := export.Validate(fields)
		for _, issue := range issues {
			fmt.Fprintln(cmd.OutOrStdout(), issue.Error())
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d problem(s) found: %w", len(issues), export.Err(issues))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d fields, ok\n", args[0], len(fields))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
