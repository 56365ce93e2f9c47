package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/config"
)

func newMessageCommand(g *globalOptions) *cobra.Command {
	var (
		locale      string
		messages    string
		defaultText string
	)

	cmd := &cobra.Command{
		Use:   "message CODE [ARG...]",
		Short: "Resolve a message code",
		Long: `Resolve CODE for a locale and print the formatted text. Positional
arguments fill the {0}, {1}, ... placeholders. When the code is unknown the
--default text is printed, or the command fails without one.`,
		Example: `  viewkit message range.toosmall Pages 1 --locale de
  viewkit message book.title.label --messages ./messages`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if messages != "" {
				cfg.MessagesDir = messages
			}
			def, err := cfg.Locale()
			if err != nil {
				return err
			}
			tag := def
			if locale != "" {
				if tag, err = language.Parse(locale); err != nil {
					return fmt.Errorf("%w: %q: %w", config.ErrInvalidLocale, locale, err)
				}
			}
			log, err := g.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(cmd.Context(), cfg.MessagesDir, def, cfg.LogMissing, log)
			if err != nil {
				return err
			}

			code, rest := args[0], make([]any, 0, len(args)-1)
			for _, a := range args[1:] {
				rest = append(rest, a)
			}

			var text string
			if cmd.Flags().Changed("default") {
				text = catalog.Lookup(tag, code, rest, defaultText)
			} else if text, err = catalog.Find(tag, code, rest); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "locale to resolve for (default: VIEWKIT_DEFAULT_LOCALE)")
	cmd.Flags().StringVar(&messages, "messages", "", "directory with message files")
	cmd.Flags().StringVar(&defaultText, "default", "", "text used when the code is unknown")
	return cmd
}
