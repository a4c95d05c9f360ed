package commands

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-smartexit/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HR pages and the form builder API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sched, err := newScheduler(ctx)
		if err != nil {
			return err
		}
		if sched == nil {
			logger.Warn("calendar token not configured, interview scheduling disabled")
		}
		themeCfg, err := themeConfig()
		if err != nil {
			return err
		}

		srv, err := server.New(
			server.WithSession(newSession()),
			server.WithScheduler(sched),
			server.WithTheme(themeCfg),
			server.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		httpServer := &http.Server{
			Addr:         addr,
			Handler:      srv.Handler(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			ErrorLog:     zap.NewStdLog(logger),
		}
		return server.ListenAndServe(ctx, httpServer, cfg.Server.ShutdownTimeout, logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
