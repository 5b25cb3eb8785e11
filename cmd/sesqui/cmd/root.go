// Package cmd provides the CLI commands for sesqui.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"impractical.co/sesqui"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the root command for the sesqui CLI.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "sesqui",
		Short: "Build the anniversary site's pages and search its timelines",
		Long: `sesqui assembles the anniversary site's pages from the components
described in sesqui.yaml and writes them out as static HTML.

It can also search a timeline dataset from the command line, using the same
index and matching rules as the timeline's search box.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "sesqui.yaml", "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the configuration file)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text, json (overrides the configuration file)")

	cmd.AddCommand(newBuildCmd(&opts))
	cmd.AddCommand(newSearchCmd(&opts))

	return cmd
}

// Execute runs the root command, cancelling its context on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// newLogger returns a logger writing to w at the given level and format.
// Unknown levels fall back to info, unknown formats to text.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// loggingContext attaches a logger for the command to ctx. Flags win over
// the configuration file's values.
func loggingContext(ctx context.Context, cmd *cobra.Command, opts *rootOptions, level, format string) context.Context {
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	if opts.logFormat != "" {
		format = opts.logFormat
	}
	return sesqui.LoggingContext(ctx, newLogger(cmd.ErrOrStderr(), level, format))
}
