// Package cli implements the viewkit command line: the demo server and the
// tooling around message catalogs and validation scripts.
package cli

import (
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/viewkit/pkg/config"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

const version = "0.1.0"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	envFiles  []string
	logLevel  string
	logFormat string
	noColor   bool
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "viewkit",
		Short: "Localized validation messages and client-side validation for Go views",
		Long: `viewkit renders localized validation errors, formats bound values and
generates client-side validation scripts from declared constraints.

The serve command starts a demo book form wired with every helper. The
remaining commands work on message catalogs and constraint files.`,
		Example: `  # Start the demo server
  viewkit serve --addr :3000

  # Print the validation script for the "book" form
  viewkit script --form book

  # Report message codes missing from a translation
  viewkit check --messages ./messages`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadDotEnv(opts.envFiles...)
			if opts.noColor {
				color.NoColor = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate("viewkit version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "load variables from .env files (default: ./.env)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text, json (overrides LOG_FORMAT)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newServeCommand(opts),
		newScriptCommand(opts),
		newMessageCommand(opts),
		newCheckCommand(opts),
		newEncodeCommand(),
	)
	return cmd
}

// config loads the environment configuration and applies the flag
// overrides.
func (o *globalOptions) config() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	return cfg, nil
}

// logger writes to w, which is the command's stderr.
func (o *globalOptions) logger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	opts, err := cfg.LoggerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		logger.WithOutput(w),
		logger.WithContextExtractors(reqctx.LoggerExtractor()),
	)
	return logger.New(opts...), nil
}
