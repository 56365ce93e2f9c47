package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/i18n"
)

func newCheckCommand(g *globalOptions) *cobra.Command {
	var messages string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report message codes missing from translations",
		Long: `Compare every loaded language with the default locale and list the codes
it cannot resolve. A regional language also counts the codes of its base
language. The command fails when any code is missing.`,
		Example: `  viewkit check
  viewkit check --messages ./messages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			log, err := g.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(cmd.Context(), cfg.MessagesDir, def, false, log)
			if err != nil {
				return err
			}
			missing := report(cmd.OutOrStdout(), catalog, def)
			if missing > 0 {
				return fmt.Errorf("%w: %d", ErrMissingMessages, missing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&messages, "messages", "", "directory with message files")
	return cmd
}

// report prints one line per language and the codes it lacks. It returns
// the number of missing codes over all languages.
func report(w io.Writer, catalog *i18n.Catalog, def language.Tag) int {
	want := catalog.Codes(def)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	total := 0
	for _, lang := range catalog.Languages() {
		tag, err := language.Parse(lang)
		if err != nil || tag == def {
			continue
		}

		have := catalog.Codes(tag)
		if base, conf := tag.Base(); conf != language.No && base.String() != lang {
			have = append(have, catalog.Codes(language.Make(base.String()))...)
		}

		var lacking []string
		for _, code := range want {
			if !slices.Contains(have, code) {
				lacking = append(lacking, code)
			}
		}
		if len(lacking) == 0 {
			ok.Fprintf(w, "✓ %s: %d codes\n", lang, len(want))
			continue
		}
		total += len(lacking)
		bad.Fprintf(w, "✗ %s: %d of %d codes missing\n", lang, len(lacking), len(want))
		for _, code := range lacking {
			fmt.Fprintf(w, "    %s\n", code)
		}
	}
	return total
}
