// Package loader turns a list of files and directories into one merged
// config.Document, choosing the parser for each file by its extension.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/fsutil"
	"github.com/specialistvlad/lootgraph/internal/hclconfig"
	"github.com/specialistvlad/lootgraph/internal/xmlconfig"
	"github.com/specialistvlad/lootgraph/internal/yamlconfig"
	"golang.org/x/sync/errgroup"
)

// FileLoader parses a single file into a document.
type FileLoader interface {
	LoadFile(ctx context.Context, path string) (*config.Document, error)
}

// Loader implements config.Loader over several formats.
type Loader struct {
	formats map[string]FileLoader
	limit   int
}

var _ config.Loader = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithFormat registers (or replaces) the parser for an extension such as ".hcl".
func WithFormat(ext string, fl FileLoader) Option {
	return func(l *Loader) {
		l.formats[strings.ToLower(ext)] = fl
	}
}

// WithConcurrency caps the number of files parsed at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.limit = n
		}
	}
}

// New returns a loader that understands .hcl, .xml, .yaml and .yml files.
func New(opts ...Option) *Loader {
	yl := yamlconfig.New()
	l := &Loader{
		formats: map[string]FileLoader{
			".hcl":  hclconfig.New(),
			".xml":  xmlconfig.New(),
			".yaml": yl,
			".yml":  yl,
		},
		limit: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions lists the registered extensions in sorted order.
func (l *Loader) Extensions() []string {
	exts := make([]string, 0, len(l.formats))
	for ext := range l.formats {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load expands directories, parses every file concurrently and merges the
// results in path order. Explicitly named files with an unknown extension
// are an error; files inside directories are filtered by extension.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.expand(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no loot files found in %v (extensions %v)", paths, l.Extensions())
	}
	logger.Debug("Loading loot files.", "count", len(files))

	docs := make([]*config.Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i, file := range files {
		fl := l.formats[strings.ToLower(filepath.Ext(file))]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := fl.LoadFile(gctx, file)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &config.Document{}
	for _, doc := range docs {
		merged.Merge(doc)
	}
	logger.Info("Loot files loaded.",
		"files", len(files),
		"groups", len(merged.Groups),
		"containers", len(merged.Containers),
	)
	return merged, nil
}

func (l *Loader) expand(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if _, ok := l.formats[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil, fmt.Errorf("unsupported file extension %q for %s", filepath.Ext(path), path)
			}
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, l.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	slices.Sort(files)
	return files, nil
}
