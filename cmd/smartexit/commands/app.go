package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-smartexit/pkg/builder"
	"github.com/goliatone/go-smartexit/pkg/calendar/google"
	"github.com/goliatone/go-smartexit/pkg/export"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/renderers/html"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
)

// newSession builds a builder session from the loaded configuration.
func newSession() *builder.Session {
	return builder.New(
		builder.WithLogger(logger),
		builder.WithSaveTimeout(cfg.Builder.SaveTimeout),
		builder.WithSaver(builder.DelaySaver{Delay: cfg.Builder.SaveLatency}),
	)
}

// newScheduler returns nil when no calendar token is configured.
func newScheduler(ctx context.Context) (*scheduler.Scheduler, error) {
	if strings.TrimSpace(cfg.Calendar.Token) == "" {
		return nil, nil
	}
	client, err := google.NewClient(ctx, google.Config{
		BaseURL:    cfg.Calendar.BaseURL,
		CalendarID: cfg.Calendar.CalendarID,
		Token:      cfg.Calendar.Token,
		Timeout:    cfg.Calendar.Timeout,
	})
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return scheduler.New(client,
		scheduler.WithLocation(loc),
		scheduler.WithTimeout(cfg.Scheduler.Timeout),
		scheduler.WithHREmail(cfg.Scheduler.HREmail),
		scheduler.WithLogger(logger),
	), nil
}

func themeConfig() (*theme.RendererConfig, error) {
	return html.StaticTheme(cfg.Theme.Manifest(), cfg.Theme.Variant)
}

// readForm loads a form-config document. Files ending in .yaml or .yml are
// converted to JSON first; either way the document must pass schema
// validation.
func readForm(path string) ([]model.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if data, err = export.YAMLToJSON(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := export.ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return export.Parse(data)
}

// loadSession returns a session holding the fields of path, or an empty one
// when path is blank.
func loadSession(path string) (*builder.Session, error) {
	session := newSession()
	if path == "" {
		return session, nil
	}
	fields, err := readForm(path)
	if err != nil {
		return nil, err
	}
	if _, err := export.Replay(session.Store(), fields); err != nil {
		return nil, err
	}
	return session, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
