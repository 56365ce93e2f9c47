package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/viewkit/pkg/codec"
)

func newEncodeCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "encode TEXT...",
		Short: "Encode text with a named codec",
		Long: `Join the arguments with spaces and encode them with one of the built-in
codecs: none, HTML, JavaScript, URL, XML or SafeHTML. Names are
case-insensitive.`,
		Example: `  viewkit encode --codec JavaScript "it's <b>"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := codec.NewRegistry().Encode(name, strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "codec", codec.HTML, "codec name")
	return cmd
}
