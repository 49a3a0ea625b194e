package build

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/tools/imports"

	"github.com/vango-dev/zx/internal/config"
	zxerrors "github.com/vango-dev/zx/internal/errors"
	"github.com/vango-dev/zx/pkg/compiler"
)

const tracerName = "zx"

// FileResult is the outcome of compiling one .zx file.
type FileResult struct {
	// Source is the absolute path of the .zx file.
	Source string

	// Output is the path of the generated .go file.
	Output string

	// SourceMap is the path of the generated .go.map file, if any.
	SourceMap string

	// Duration is how long the file took to compile.
	Duration time.Duration

	// Err is the compile or I/O error, if any.
	Err error
}

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Files holds one entry per source file, in discovery order.
	Files []FileResult

	// Failed is the number of files that did not compile.
	Failed int

	// Published is the number of source maps uploaded.
	Published int
}

// Errors returns the errors of the failed files.
func (r *Result) Errors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Options configures the builder.
type Options struct {
	// SourceMaps enables source map generation.
	SourceMaps bool

	// Goimports fixes imports in generated files. Files are gofmt-formatted
	// whenever source maps are off.
	Goimports bool

	// Publish uploads source maps after a successful build.
	Publish bool

	// Workers bounds the number of files compiled concurrently.
	Workers int

	// Uploader receives published source maps.
	// Default: an S3 client for the configured region
	Uploader Uploader

	// Metrics records per-file results. Nil disables metrics.
	Metrics *Metrics

	// Tracer starts a span per file. Default: otel.Tracer("zx")
	Tracer trace.Tracer

	// Logger receives per-file results. Default: slog.Default()
	Logger *slog.Logger

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder compiles the .zx files of a project.
type Builder struct {
	config  *config.Config
	options Options
}

// New creates a new builder. Options left unset fall back to the project
// configuration.
func New(cfg *config.Config, options Options) *Builder {
	if !options.SourceMaps && cfg.Build.SourceMaps {
		options.SourceMaps = true
	}
	if !options.Goimports && cfg.Build.Goimports {
		options.Goimports = true
	}
	if options.Workers <= 0 {
		options.Workers = cfg.Build.Workers
	}
	if options.Workers <= 0 {
		options.Workers = 1
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Tracer == nil {
		options.Tracer = otel.Tracer(tracerName)
	}
	if options.Publish && options.Uploader == nil && cfg.HasPublish() {
		options.Uploader = NewS3Uploader(cfg.Build.Publish)
	}

	return &Builder{
		config:  cfg,
		options: options,
	}
}

// source is a discovered .zx file and the source directory it was found in.
type source struct {
	root string
	path string
}

// Discover returns every .zx file under the configured source directories,
// skipping hidden directories, testdata, and directories starting with "_".
func (b *Builder) Discover() ([]string, error) {
	sources, err := b.discover()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(sources))
	for i, s := range sources {
		paths[i] = s.path
	}
	return paths, nil
}

func (b *Builder) discover() ([]source, error) {
	seen := make(map[string]bool)
	var out []source
	for _, root := range b.config.SourceDirs() {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".zx" || seen[path] {
				return nil
			}
			seen[path] = true
			out = append(out, source{root: root, path: path})
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", root)
		}
	}
	return out, nil
}

// Build compiles every discovered file. Files are compiled concurrently;
// a failing file does not stop the others. The returned error is non-nil
// when any file failed or publishing failed, and the Result is always
// populated with what was done.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	b.progress("Discovering sources...")
	sources, err := b.discover()
	if err != nil {
		return nil, err
	}
	if b.options.Goimports && b.options.SourceMaps {
		b.options.Logger.Warn("goimports disabled: it would shift source map positions")
	}

	b.progress("Compiling...")
	result := &Result{Files: make([]FileResult, len(sources))}

	sem := make(chan struct{}, b.options.Workers)
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				result.Files[i] = FileResult{Source: src.path, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				result.Files[i] = FileResult{Source: src.path, Err: err}
				return
			}
			result.Files[i] = b.compileFile(ctx, src)
		}()
	}
	wg.Wait()

	for _, f := range result.Files {
		if f.Err != nil {
			result.Failed++
		}
	}
	result.Duration = time.Since(start)

	if result.Failed > 0 {
		return result, zxerrors.New("E140").
			WithDetail(pluralize(result.Failed, "file") + " failed to compile")
	}

	if b.options.Publish && b.options.SourceMaps && b.config.HasPublish() {
		b.progress("Publishing source maps...")
		if b.options.Uploader == nil {
			return result, zxerrors.New("E142").WithDetail("no uploader configured")
		}
		n, err := b.publish(ctx, result.Files)
		result.Published = n
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

// compileFile transpiles one file and writes its outputs.
func (b *Builder) compileFile(ctx context.Context, src source) (res FileResult) {
	name := b.displayName(src.path)
	_, span := b.options.Tracer.Start(ctx, "zx.compile",
		trace.WithAttributes(attribute.String("zx.file", name)))
	start := time.Now()
	res.Source = src.path

	defer func() {
		res.Duration = time.Since(start)
		b.options.Metrics.observe(res.Duration, res.Err)
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
			b.options.Logger.Error("compile failed", "file", name, "error", res.Err)
		} else {
			b.options.Logger.Info("compiled", "file", name, "output", res.Output, "duration", res.Duration)
		}
		span.End()
	}()

	data, err := os.ReadFile(src.path)
	if err != nil {
		res.Err = errors.Wrapf(err, "read %s", name)
		return res
	}

	out, err := compiler.Transpile(name, data, compiler.Options{
		IndentWidth: b.config.Build.Indent,
		SourceMap:   b.options.SourceMaps,
		Logger:      b.options.Logger,
	})
	if err != nil {
		res.Err = err
		return res
	}

	res.Output = b.outputPath(src)
	code := out.Code
	// Formatting moves generated lines, so mapped output is left as emitted.
	if !b.options.SourceMaps {
		code, err = imports.Process(res.Output, code, &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: !b.options.Goimports,
		})
		if err != nil {
			res.Err = zxerrors.New("E009").WithDetail(name + ": " + err.Error()).Wrap(err)
			return res
		}
	}

	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Err = errors.Wrapf(err, "create %s", filepath.Dir(res.Output))
		return res
	}
	if err := os.WriteFile(res.Output, code, 0644); err != nil {
		res.Err = errors.Wrapf(err, "write %s", res.Output)
		return res
	}

	if out.SourceMap != nil {
		mapJSON, err := out.SourceMap.JSON()
		if err != nil {
			res.Err = errors.Wrapf(err, "encode source map for %s", name)
			return res
		}
		res.SourceMap = res.Output + ".map"
		if err := os.WriteFile(res.SourceMap, mapJSON, 0644); err != nil {
			res.Err = errors.Wrapf(err, "write %s", res.SourceMap)
			return res
		}
	}
	return res
}

// outputPath places the generated file next to its source, or mirrors the
// source tree under the configured output directory.
func (b *Builder) outputPath(src source) string {
	out := compiler.OutputName(src.path)
	dir := b.config.OutputPath()
	if dir == "" {
		return out
	}
	rel, err := filepath.Rel(src.root, out)
	if err != nil {
		rel = filepath.Base(out)
	}
	return filepath.Join(dir, rel)
}

// displayName is the slash-separated path relative to the project root.
// It is what the compiler sees, so island ids do not depend on where the
// project is checked out.
func (b *Builder) displayName(path string) string {
	if dir := b.config.Dir(); dir != "" {
		if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// Clean removes generated files for every discovered source.
func (b *Builder) Clean() error {
	sources, err := b.discover()
	if err != nil {
		return err
	}
	for _, src := range sources {
		out := b.outputPath(src)
		for _, p := range []string{out, out + ".map"} {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "remove %s", p)
			}
		}
	}
	return nil
}

func pluralize(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
