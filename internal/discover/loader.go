package discover

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/chriserin/gherk/internal/parser"
)

const cacheSize = 256

// File is one parsed .feature file.
type File struct {
	Path    string
	Feature *parser.Feature
}

// Loader parses files concurrently. Results are memoized by content digest,
// so identical files are parsed once per Loader.
type Loader struct {
	workers int
	log     *slog.Logger
	cache   *lru.Cache[string, *parser.Feature]
}

func NewLoader(workers int, log *slog.Logger) (*Loader, error) {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	cache, err := lru.New[string, *parser.Feature](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return &Loader{workers: workers, log: log, cache: cache}, nil
}

// Load discovers and parses every .feature file under roots. Files without
// content are skipped. The first parse error aborts the load.
func (l *Loader) Load(ctx context.Context, roots ...string) ([]File, error) {
	paths, err := Collect(roots)
	if err != nil {
		return nil, err
	}

	features := make([]*parser.Feature, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := l.ParseFile(path)
			if err != nil {
				return err
			}
			features[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(paths))
	for i, f := range features {
		if f == nil {
			l.log.Debug("no feature in file", "path", paths[i])
			continue
		}
		files = append(files, File{Path: paths[i], Feature: f})
	}
	l.log.Info("loaded features", "files", len(paths), "features", len(files))
	return files, nil
}

// ParseFile reads and parses a single file.
func (l *Loader) ParseFile(path string) (*parser.Feature, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sum := sha256.Sum256(content)
	key := hex.EncodeToString(sum[:])
	if f, ok := l.cache.Get(key); ok {
		l.log.Debug("parse cache hit", "path", path)
		return f, nil
	}

	f, err := parser.ParseBytes(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	l.cache.Add(key, f)
	l.log.Debug("parsed file", "path", path, "scenarios", scenarioCount(f))
	return f, nil
}

func scenarioCount(f *parser.Feature) int {
	if f == nil {
		return 0
	}
	return len(f.Scenarios)
}
