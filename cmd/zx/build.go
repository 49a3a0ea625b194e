package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/zx/internal/build"
	"github.com/vango-dev/zx/internal/config"
	"github.com/vango-dev/zx/internal/errors"
)

type buildFlags struct {
	sourceMaps  bool
	goimports   bool
	publish     bool
	clean       bool
	workers     int
	metricsFile string
}

func buildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Compile every .zx file in the project",
		Long: `Compile every .zx file under the configured source directories.

The project root is the nearest directory containing zx.json, starting
from dir (default: the working directory). Without zx.json, dir itself is
the root and every .zx file below it is compiled.

Examples:
  zx build
  zx build ./web --sourcemaps
  zx build --sourcemaps --publish
  zx build --metrics-file build.prom`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runBuild(cmd.Context(), cmd.OutOrStdout(), dir, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.sourceMaps, "sourcemaps", false, "Write .go.map source maps (default from zx.json)")
	cmd.Flags().BoolVar(&flags.goimports, "goimports", false, "Run goimports over generated files (default from zx.json)")
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "Upload source maps to the bucket in zx.json")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "Remove generated files before building")
	cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, "Files compiled concurrently (default from zx.json)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write build metrics in Prometheus text format to this file")

	return cmd
}

func runBuild(ctx context.Context, out io.Writer, dir string, flags buildFlags) error {
	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return err
	}
	if flags.publish && !cfg.HasPublish() {
		return errors.New("E142").
			WithDetail("--publish needs build.publish.bucket in zx.json")
	}

	var (
		registry *prometheus.Registry
		metrics  *build.Metrics
	)
	if flags.metricsFile != "" || cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		metrics = build.NewMetrics(build.WithRegistry(registry))
	}

	builder := build.New(cfg, build.Options{
		SourceMaps: flags.sourceMaps,
		Goimports:  flags.goimports,
		Publish:    flags.publish,
		Workers:    flags.workers,
		Metrics:    metrics,
		OnProgress: func(step string) {
			info(out, "%s", step)
		},
	})

	if flags.clean {
		info(out, "Cleaning generated files...")
		if err := builder.Clean(); err != nil {
			return err
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := builder.Build(ctx)

	if registry != nil && flags.metricsFile != "" {
		path := flags.metricsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dir(), path)
		}
		if werr := prometheus.WriteToTextfile(path, registry); werr != nil && err == nil {
			err = werr
		}
	}

	if err != nil {
		if result != nil {
			for _, ferr := range result.Errors() {
				errors.PrintError(ferr)
			}
		}
		return err
	}

	success(out, "Compiled %d files in %s", len(result.Files), result.Duration.Round(time.Millisecond))
	if result.Published > 0 {
		success(out, "Published %d source maps to s3://%s/%s", result.Published, cfg.Build.Publish.Bucket, cfg.Build.Publish.Prefix)
	}
	return nil
}
