package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/internal/demo"
	"github.com/dmitrymomot/viewkit/pkg/constraint"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/logger"
)

var (
	ErrMissingMessages = errors.New("missing message codes")
	ErrUnknownCodec    = errors.New("unknown default codec")
)

// loadCatalog reads dir from the host file system, or the bundled demo
// messages when dir is empty. YAML, JSON and TOML files may be mixed.
func loadCatalog(ctx context.Context, dir string, def language.Tag, logMissing bool, log *slog.Logger) (*i18n.Catalog, error) {
	fsys := demo.Messages()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	catalog, err := i18n.NewCatalog(ctx, i18n.NewFSSource(fsys, ".", nil),
		i18n.WithDefaultLanguage(def),
		i18n.WithLogger(log),
		i18n.WithMissingMessagesLogging(logMissing),
	)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return catalog, nil
}

// loadConstraints layers file over the bundled declarations and the struct
// tags of demo.Book. The first source knowing a type wins.
func loadConstraints(file string, log *slog.Logger) (constraint.Source, error) {
	bundled := constraint.NewRegistry()
	if err := bundled.LoadYAML(demo.Constraints()); err != nil {
		return nil, fmt.Errorf("bundled constraints: %w", err)
	}
	tagged := constraint.NewRegistry()
	if err := tagged.RegisterStruct(demo.Book{}); err != nil {
		return nil, err
	}
	if file == "" {
		return constraint.Sources{bundled, tagged}, nil
	}

	types, err := constraint.LoadYAMLFile(os.DirFS(filepath.Dir(file)), filepath.Base(file))
	if err != nil {
		return nil, err
	}
	custom := constraint.NewRegistry()
	for _, t := range types {
		if err := custom.Register(t.Name, t.Constraints); err != nil {
			return nil, err
		}
	}
	log.Info("constraints loaded", slog.String("file", file), logger.Count(len(types)))
	return constraint.Sources{custom, bundled, tagged}, nil
}
