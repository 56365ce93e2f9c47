package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
)

// Source loads messages keyed by language tag.
type Source interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapSource serves messages from memory.
type MapSource map[string]map[string]any

func (s MapSource) Load(_ context.Context) (map[string]map[string]any, error) {
	if s == nil {
		return map[string]map[string]any{}, nil
	}
	return s, nil
}

// FSSource reads every file in dir that the parser supports and merges the
// results. Later files override earlier ones key by key. Without a parser
// each file is parsed according to its extension (see ParserForFile). Works
// with embed.FS, os.DirFS and fstest.MapFS.
type FSSource struct {
	fsys   fs.FS
	dir    string
	parser Parser
}

// NewFSSource returns a source reading dir from fsys with parser, which may
// be nil.
func NewFSSource(fsys fs.FS, dir string, parser Parser) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir, parser: parser}
}

func (s *FSSource) Load(ctx context.Context) (map[string]map[string]any, error) {
	if s.fsys == nil {
		return nil, ErrNilSource
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(map[string]map[string]any)
	found := false
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := s.parser
		if parser == nil {
			parser = ParserForFile(entry.Name())
		}
		if parser == nil || !parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(s.dir, entry.Name())
		content, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		if len(content) == 0 {
			continue
		}

		parsed, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
		}
		for lang, messages := range parsed {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(messages))
			}
			maps.Copy(all[lang], messages)
		}
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w in %q", ErrNoMessageFilesFound, s.dir)
	}
	return all, nil
}
