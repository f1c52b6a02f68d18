// Package cli implements the paramsctl command-line interface.
//
// paramsctl builds one of the registered object classes, applies parameter
// files and Class:key=value overrides, and prints the result:
//
//	paramsctl describe Text
//	paramsctl script Text --config text.yaml Text:font_size=0.1
//	paramsctl schema Viewport --format openapi
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports parameter changes and the file each value came from.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configs   []string
	errorMode string
	verbose   bool
	audit     bool
}

// New creates a CLI writing log output to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// newLogger creates a logger with timestamps formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "paramsctl",
		Short:        "paramsctl inspects typed parameter schemas",
		Long:         `paramsctl builds parameter containers for the built-in object classes, applies parameter files and command-line overrides, and prints help, scripts or schemas.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&c.configs, "config", nil, "parameter files applied in order, later files win (json, yaml, toml, hcl)")
	flags.StringVar(&c.errorMode, "error-mode", "exception", "how failures are reported: none, warning, error, critical, exception")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&c.audit, "audit", false, "log every parameter change as an activity record")

	root.AddCommand(c.classesCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.scriptCommand())
	root.AddCommand(c.schemaCommand())
	return root
}
