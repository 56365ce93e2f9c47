package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/viewkit/internal/demo"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/config"
	"github.com/dmitrymomot/viewkit/pkg/httpserver"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
	"github.com/dmitrymomot/viewkit/pkg/tags"
)

func newServeCommand(g *globalOptions) *cobra.Command {
	var (
		addr        string
		messages    string
		constraints string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo book form server",
		Long: `Start an HTTP server with the demo book form. Messages and constraints
default to the bundled ones; the flags override VIEWKIT_MESSAGES_DIR,
VIEWKIT_CONSTRAINTS_FILE and HTTP_ADDR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if messages != "" {
				cfg.MessagesDir = messages
			}
			if constraints != "" {
				cfg.ConstraintsFile = constraints
			}

			log, err := g.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler, err := buildServer(ctx, cfg, log)
			if err != nil {
				return err
			}
			srv := httpserver.New(
				httpserver.WithAddr(cfg.Addr),
				httpserver.WithLogger(log),
				httpserver.WithStartHook(func(l *slog.Logger) {
					l.Info("book form ready", slog.String("path", "/"), slog.String("health", "/healthz"))
				}),
			)
			return srv.Run(ctx, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&messages, "messages", "", "directory with message files")
	cmd.Flags().StringVar(&constraints, "constraints", "", "YAML constraints file")
	return cmd
}

// buildServer wires the catalog, constraints and tag library into the demo
// router.
func buildServer(ctx context.Context, cfg config.Config, log *slog.Logger) (http.Handler, error) {
	locales, err := cfg.Locales()
	if err != nil {
		return nil, err
	}

	encoder := codec.NewRegistry()
	if !encoder.Has(cfg.DefaultCodec) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, cfg.DefaultCodec)
	}

	catalog, err := loadCatalog(ctx, cfg.MessagesDir, locales[0], cfg.LogMissing, log)
	if err != nil {
		return nil, err
	}
	constraints, err := loadConstraints(cfg.ConstraintsFile, log)
	if err != nil {
		return nil, err
	}

	lib := tags.New(catalog, constraints,
		tags.WithEncoder(encoder),
		tags.WithDefaultCodec(cfg.DefaultCodec),
		tags.WithScriptCache(32),
		tags.WithLogger(log),
	)
	h, err := demo.NewHandler(lib, log)
	if err != nil {
		return nil, err
	}

	ready := httpserver.Ready(log, func(context.Context) error {
		if len(catalog.Languages()) == 0 {
			return errors.New("message catalog is empty")
		}
		return nil
	})
	return demo.Router(h, ready,
		reqctx.WithSupportedLocales(locales...),
		reqctx.WithHTMLEncode(cfg.HTMLEncode),
	), nil
}
