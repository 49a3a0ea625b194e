// Package build compiles the .zx files of a project into Go.
//
// This package handles:
//   - Discovering .zx files under the configured source directories
//   - Transpiling them concurrently with a bounded worker pool
//   - Writing generated .go files and, optionally, .go.map source maps
//   - Running goimports over the output
//   - Uploading source maps to S3
//
// Each file is compiled inside its own OpenTelemetry span and, when a
// Metrics value is supplied, recorded in Prometheus.
//
// # Usage
//
//	builder := build.New(cfg, build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    for _, e := range result.Errors() {
//	        errors.PrintError(e)
//	    }
//	    os.Exit(1)
//	}
//
//	fmt.Printf("Compiled %d files in %s\n", len(result.Files), result.Duration)
//
// # Output Structure
//
// With build.output empty, generated files sit next to their sources:
//
//	views/
//	├── home.zx
//	├── home.go        # generated
//	└── home.go.map    # with source maps enabled
//
// Otherwise the source tree is mirrored under the output directory.
package build
