package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/viewkit/pkg/clientscript"
)

func newScriptCommand(g *globalOptions) *cobra.Command {
	var (
		constraints string
		form        string
		opts        clientscript.Options
	)

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the client-side validation script of a form",
		Long: `Print the <script> block validating a form against the constraints of a
type. Without --constraints the bundled demo declarations are used.`,
		Example: `  viewkit script --form book
  viewkit script --form editBook --against Book --no-submit-hook
  viewkit script --form author --constraints ./constraints.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if constraints == "" {
				constraints = cfg.ConstraintsFile
			}
			log, err := g.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			source, err := loadConstraints(constraints, log)
			if err != nil {
				return err
			}
			script, err := clientscript.NewGenerator(source, clientscript.WithLogger(log)).Generate(form, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), script)
			return err
		},
	}

	cmd.Flags().StringVar(&form, "form", "", "name of the form element (required)")
	cmd.Flags().StringVar(&opts.Against, "against", "", "type whose constraints apply (default: capitalized form name)")
	cmd.Flags().BoolVar(&opts.SkipSubmitHook, "no-submit-hook", false, "do not bind validateForm to the form's onsubmit")
	cmd.Flags().StringVar(&constraints, "constraints", "", "YAML constraints file")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}
