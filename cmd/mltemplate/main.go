package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/mltemplate/compiler"
	"github.com/vcrobe/mltemplate/console"
	"github.com/vcrobe/mltemplate/internal/buildcache"
	"github.com/vcrobe/mltemplate/internal/watch"
)

type config struct {
	in       string
	out      string
	name     string
	pkg      string
	watch    bool
	cache    string
	cacheTTL time.Duration
	jobs     int
}

func main() {
	// --- CLI Flags ---
	var cfg config
	flag.StringVar(&cfg.in, "in", ".", "A template file, or a directory to scan for *"+compiler.TemplateSuffix+" templates.")
	flag.StringVar(&cfg.out, "out", "", "Output directory (default: next to each template).")
	flag.StringVar(&cfg.name, "name", "", "Module name when -in is a file (default: the template's base name).")
	flag.StringVar(&cfg.pkg, "pkg", "", "Package name of the generated code (default: the package found in the output directory).")
	flag.BoolVar(&cfg.watch, "watch", false, "Recompile when templates, includes or trailers change.")
	flag.StringVar(&cfg.cache, "cache", "", "Path of a build cache database; unchanged templates are not recompiled.")
	flag.DurationVar(&cfg.cacheTTL, "cache-ttl", 0, "Maximum age of build cache entries (0: no limit).")
	flag.IntVar(&cfg.jobs, "j", runtime.GOMAXPROCS(0), "Number of templates compiled in parallel.")
	verbose := flag.Bool("v", false, "Log debug messages.")
	logJSON := flag.Bool("log-json", false, "Log in JSON.")
	flag.Parse()

	logger := console.NewLogger(os.Stderr, *verbose, *logJSON)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		console.Error(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	b := &builder{cfg: cfg, logger: logger}
	if cfg.cache != "" {
		cache, err := buildcache.Open(cfg.cache, cfg.cacheTTL)
		if err != nil {
			return err
		}
		defer cache.Close()
		cache.OnInvalidate = func(key, reason string) {
			logger.Debug("cache entry invalidated", slog.String("key", key), slog.String("reason", reason))
		}
		b.cache = cache
	}

	fi, err := os.Stat(cfg.in)
	if err != nil {
		return err
	}
	build := b.buildDir
	root := cfg.in
	if !fi.IsDir() {
		build = b.buildFile
		root = filepath.Dir(cfg.in)
	}

	buildErr := build(ctx)
	if !cfg.watch {
		return buildErr
	}
	if buildErr != nil {
		console.Error(os.Stderr, buildErr)
	}
	w, err := watch.New(root, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", slog.String("root", root))
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		return build(ctx)
	})
}

// builder compiles templates and writes their units.
type builder struct {
	cfg    config
	logger *slog.Logger
	cache  *buildcache.Cache
}

func (b *builder) buildFile(ctx context.Context) error {
	dir, name := filepath.Split(b.cfg.in)
	if dir == "" {
		dir = "."
	}
	outDir := b.cfg.out
	if outDir == "" {
		outDir = dir
	}
	pkg := b.cfg.pkg
	if pkg == "" {
		detected, err := compiler.DetectPackage(outDir)
		if err != nil {
			b.logger.Warn("could not detect package", slog.String("dir", outDir), slog.Any("error", err))
		}
		pkg = detected
	}
	if pkg == "" {
		absOut, err := filepath.Abs(outDir)
		if err != nil {
			return err
		}
		pkg = compiler.PackageName(filepath.ToSlash(absOut), compiler.ModuleName(name))
	}
	return b.compile(ctx, dir, name, outDir, compiler.Options{Module: b.cfg.name, Package: pkg, Logger: b.logger})
}

func (b *builder) buildDir(ctx context.Context) error {
	templates, err := compiler.Discover(b.cfg.in, b.logger)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(b.cfg.in)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	var allErr error
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.jobs, 1))
	for _, tmpl := range templates {
		tmpl := tmpl
		g.Go(func() error {
			outDir := tmpl.Dir
			if b.cfg.out != "" {
				rel, err := filepath.Rel(root, tmpl.Dir)
				if err != nil {
					return err
				}
				outDir = filepath.Join(b.cfg.out, rel)
			}
			pkg := b.cfg.pkg
			if pkg == "" {
				pkg = tmpl.Package
			}
			err := b.compile(ctx, root, filepath.FromSlash(tmpl.Path), outDir, compiler.Options{Package: pkg, Logger: b.logger})
			if err != nil {
				// One broken template does not stop the others.
				mu.Lock()
				allErr = errors.Join(allErr, err)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if allErr == nil {
		b.logger.Info("compilation completed", slog.Int("templates", len(templates)))
	}
	return allErr
}

// cachedUnits is what the build cache stores for one template.
type cachedUnits struct {
	Implementation compiler.Unit
	Interface      compiler.Unit
}

// compile compiles root/name into outDir. With a build cache, a template
// whose sources are unchanged is written from the cache.
func (b *builder) compile(ctx context.Context, root, name, outDir string, opts compiler.Options) error {
	slashName := filepath.ToSlash(name)
	fsys := os.DirFS(root)
	if b.cache == nil {
		result, err := compiler.CompileTemplate(fsys, slashName, opts)
		if err != nil {
			return err
		}
		return b.write(result, outDir, slashName)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("compile\x00%s\x00%s\x00%s\x00%s", absRoot, slashName, opts.Module, opts.Package)
	compiled := false
	value, err := b.cache.Memoize(ctx, key, func() ([]byte, []string, error) {
		result, err := compiler.CompileTemplate(fsys, slashName, opts)
		if err != nil {
			return nil, nil, err
		}
		compiled = true
		// Missing trailers are dependencies too: creating one changes the output.
		deps := make([]string, 0, len(result.Files)+len(result.Absent))
		for _, f := range append(append([]string{}, result.Files...), result.Absent...) {
			deps = append(deps, filepath.Join(absRoot, filepath.FromSlash(f)))
		}
		value, err := json.Marshal(cachedUnits{Implementation: result.Implementation, Interface: result.Interface})
		return value, deps, err
	})
	if err != nil {
		return err
	}
	if !compiled {
		b.logger.Debug("template unchanged", slog.String("template", slashName))
	}
	var units cachedUnits
	if err := json.Unmarshal(value, &units); err != nil {
		return fmt.Errorf("corrupt cache entry for %s: %w", slashName, err)
	}
	return b.write(&compiler.Result{Implementation: units.Implementation, Interface: units.Interface}, outDir, slashName)
}

func (b *builder) write(result *compiler.Result, outDir, name string) error {
	if err := result.Write(outDir); err != nil {
		return err
	}
	b.logger.Info("compiled template",
		slog.String("template", name),
		slog.String("implementation", filepath.Join(outDir, result.Implementation.Name)),
		slog.String("interface", filepath.Join(outDir, result.Interface.Name)),
	)
	return nil
}
