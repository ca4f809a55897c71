// Package config holds dashdoc's runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/dashdoc"
	"gopkg.in/yaml.v3"
)

// AppName is the application name used for XDG directory paths.
const AppName = "dashdoc"

// DocsetsDirEnv names the environment variable that overrides the docsets
// directory.
const DocsetsDirEnv = "DASHDOC_DOCSETS_DIR"

// Default configuration values.
const (
	DefaultAddr              = "127.0.0.1:54321"
	DefaultMaxConns          = 16
	DefaultRequestsPerSecond = 0
	DefaultReadTimeout       = 30 * time.Second
	DefaultResultLimit       = 50
)

// Config holds every dashdoc setting. Zero values are replaced by defaults
// in Load.
type Config struct {
	// DocsetsDir is the directory holding installed <Name>.docset bundles.
	DocsetsDir string `yaml:"docsets_dir"`

	// Addr is the listen address of the serve command.
	Addr string `yaml:"addr"`

	// MaxConns bounds concurrently served connections.
	MaxConns int `yaml:"max_conns"`

	// RequestsPerSecond throttles accepted connections. Zero disables
	// throttling.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// ReadTimeout bounds the time spent on one connection.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// ResultLimit caps the results taken from each docset.
	ResultLimit int `yaml:"result_limit"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// ErrConfigNotFound is returned when an explicitly named config file does
// not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DocsetsDir:        DefaultDocsetsDir(),
		Addr:              DefaultAddr,
		MaxConns:          DefaultMaxConns,
		RequestsPerSecond: DefaultRequestsPerSecond,
		ReadTimeout:       DefaultReadTimeout,
		ResultLimit:       DefaultResultLimit,
	}
}

// DefaultDocsetsDir returns $DASHDOC_DOCSETS_DIR, or the docsets directory
// under the XDG data home.
func DefaultDocsetsDir() string {
	if dir := os.Getenv(DocsetsDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.DataHome, AppName, "docsets")
}

// DefaultConfigFile returns the path of the config file under the XDG
// config home.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads the YAML config file at path over the defaults. An empty path
// means DefaultConfigFile, which may be absent. An explicit path that does
// not exist returns ErrConfigNotFound.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.merge(&file)

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.DocsetsDir == "":
		return dashdoc.Errorf(dashdoc.EINVALID, "docsets directory required")
	case c.Addr == "":
		return dashdoc.Errorf(dashdoc.EINVALID, "listen address required")
	case c.MaxConns < 0:
		return dashdoc.Errorf(dashdoc.EINVALID, "max connections must not be negative")
	case c.RequestsPerSecond < 0:
		return dashdoc.Errorf(dashdoc.EINVALID, "requests per second must not be negative")
	case c.ReadTimeout < 0:
		return dashdoc.Errorf(dashdoc.EINVALID, "read timeout must not be negative")
	case c.ResultLimit < 0:
		return dashdoc.Errorf(dashdoc.EINVALID, "result limit must not be negative")
	}
	return nil
}

// merge copies the non-zero fields of other into c.
func (c *Config) merge(other *Config) {
	if other.DocsetsDir != "" {
		c.DocsetsDir = expandHome(other.DocsetsDir)
	}
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.MaxConns != 0 {
		c.MaxConns = other.MaxConns
	}
	if other.RequestsPerSecond != 0 {
		c.RequestsPerSecond = other.RequestsPerSecond
	}
	if other.ReadTimeout != 0 {
		c.ReadTimeout = other.ReadTimeout
	}
	if other.ResultLimit != 0 {
		c.ResultLimit = other.ResultLimit
	}
	if other.Verbose {
		c.Verbose = true
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	return filepath.Join(xdg.Home, path[2:])
}
