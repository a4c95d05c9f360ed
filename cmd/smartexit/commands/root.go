package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-smartexit/internal/config"
	"github.com/goliatone/go-smartexit/internal/logging"
	"github.com/goliatone/go-smartexit/pkg/builder"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
)

var (
	version    = "dev"
	configFile string
	logLevel   string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "smartexit",
	Short: "Smart Exit offboarding tools",
	Long: `Smart Exit builds exit interview forms and books exit interviews.

Run "smartexit serve" for the HR web pages, or use the build, preview,
export and validate commands to work with form-config.json files directly.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		l, err := logging.New(loaded.Logging.Level, loaded.Logging.Format)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = l
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", describe(err))
	}
	return err
}

// describe prints errors that have a display text as that text.
func describe(err error) string {
	switch {
	case errors.Is(err, builder.ErrEmptyForm):
		return builder.EmptyFormMessage
	case errors.Is(err, scheduler.ErrMissingDateTime):
		return scheduler.MissingDateTimeMessage
	}
	return err.Error()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML); SMARTEXIT_* variables override it")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
