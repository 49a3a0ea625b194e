package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/vango-dev/zx/internal/errors"
)

const (
	// ConfigFileName marks a project root.
	ConfigFileName = "zx.json"

	// DefaultIndent is the default number of spaces per indentation level
	// in generated code.
	DefaultIndent = 4

	// DefaultPrefix is the default key prefix for published source maps.
	DefaultPrefix = "sourcemaps/"
)

// Config represents the complete zx.json configuration.
type Config struct {
	// Src lists the directories searched for .zx files, relative to the
	// project root. Default: ["."]
	Src []string `json:"src,omitempty"`

	// Build contains transpile settings.
	Build BuildConfig `json:"build,omitempty"`

	// Metrics contains builder metrics settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	configPath string
}

// BuildConfig contains transpile settings.
type BuildConfig struct {
	// Output is the directory generated files are written to. Empty writes
	// each .go file next to its .zx source.
	Output string `json:"output,omitempty"`

	// SourceMaps writes a .go.map next to every generated file.
	SourceMaps bool `json:"sourceMaps,omitempty"`

	// Goimports runs goimports over generated files.
	Goimports bool `json:"goimports,omitempty"`

	// Indent is the number of spaces per indentation level.
	Indent int `json:"indent,omitempty"`

	// Workers bounds the number of files compiled concurrently.
	// Default: runtime.NumCPU()
	Workers int `json:"workers,omitempty"`

	// Publish uploads source maps to object storage after a build.
	Publish PublishConfig `json:"publish,omitempty"`
}

// PublishConfig locates the bucket source maps are uploaded to.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// MetricsConfig contains builder metrics settings.
type MetricsConfig struct {
	// Enabled records Prometheus metrics for each build.
	Enabled bool `json:"enabled,omitempty"`
}

// New returns the configuration of a project without zx.json.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory. A directory
// without zx.json yields the defaults rooted at dir.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if !Exists(dir) {
		cfg := New()
		cfg.configPath = configPath
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile parses and validates a zx.json file. Unset fields get defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse zx.json: " + err.Error()).
			WithSuggestion("Check that zx.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes c back to where it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path is the zx.json path, which may not exist on disk.
func (c *Config) Path() string { return c.configPath }

// Dir is the project root.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if len(c.Src) == 0 {
		c.Src = []string{"."}
	}
	if c.Build.Indent == 0 {
		c.Build.Indent = DefaultIndent
	}
	if c.Build.Workers == 0 {
		c.Build.Workers = runtime.NumCPU()
	}
	if c.Build.Publish.Bucket != "" && c.Build.Publish.Prefix == "" {
		c.Build.Publish.Prefix = DefaultPrefix
	}
}

// Validate reports every invalid setting in one E121 error.
func (c *Config) Validate() error {
	var problems []string
	if c.Build.Indent < 0 || c.Build.Indent > 16 {
		problems = append(problems, "build.indent must be between 1 and 16, or 0 for the default")
	}
	if c.Build.Workers < 0 {
		problems = append(problems, "build.workers must not be negative")
	}
	if slices.Contains(c.Src, "") {
		problems = append(problems, "src entries must not be empty")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New("E121").WithDetail(strings.Join(problems, "; "))
}

// SourceDirs returns the absolute source directories.
func (c *Config) SourceDirs() []string {
	dirs := make([]string, 0, len(c.Src))
	for _, dir := range c.Src {
		dirs = append(dirs, c.abs(dir))
	}
	return dirs
}

// OutputPath returns the absolute build output directory, or "" when
// generated files are written next to their sources.
func (c *Config) OutputPath() string {
	if c.Build.Output == "" {
		return ""
	}
	return c.abs(c.Build.Output)
}

// HasPublish reports whether source maps should be uploaded.
func (c *Config) HasPublish() bool {
	return c.Build.Publish.Bucket != ""
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists reports whether dir holds a zx.json file.
func Exists(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil && !fi.IsDir()
}

// FindProjectRoot returns the nearest directory at or above startDir that
// holds zx.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E122").
				WithDetail("No zx.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create zx.json at the project root, or pass the directory to build")
		}
		dir = parent
	}
}

// LoadFromDir loads the configuration of the project containing dir. When
// no zx.json exists above dir, dir itself is treated as the project root.
func LoadFromDir(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}
		return Load(abs)
	}
	return Load(root)
}
