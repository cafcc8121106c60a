package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/crispy/internal/errors"
	"github.com/vango-dev/crispy/pkg/toast"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are the file names searched by Load, in order.
var ConfigFileNames = []string{"crispy.json", "crispy.yaml", "crispy.yml"}

const (
	// DefaultPort is the default live server port.
	DefaultPort = 4000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultDurationMS is the default toast duration in milliseconds.
	DefaultDurationMS = 3000

	// DefaultMetricsPath is where metrics are served when enabled.
	DefaultMetricsPath = "/metrics"
)

// Config is the complete crispy configuration.
type Config struct {
	// Position is where toasts appear (default: bottom-right).
	Position string `json:"position,omitempty" yaml:"position,omitempty"`

	// Duration is how long toasts stay visible, in milliseconds (default: 3000).
	Duration int `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Server configures the live host.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
}

// New returns a configuration with all defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the first config file found in dir. A directory without a
// config file yields the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads and validates the config file at path.
// The format is chosen by extension: .yaml and .yml are YAML, anything
// else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigRead).
			WithDetail("Failed to read " + path + ".").
			Wrap(err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Format is a config file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes, defaults and validates a configuration.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := &Config{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithSuggestion(fmt.Sprintf("Check that the file is valid %s.", strings.ToUpper(string(format)))).
			Wrap(err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path the config was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in zero values.
func (c *Config) applyDefaults() {
	if c.Position == "" {
		c.Position = string(toast.DefaultPosition)
	}
	if c.Duration == 0 {
		c.Duration = DefaultDurationMS
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "crispy"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "crispy"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := toast.ParsePosition(c.Position); err != nil {
		return err
	}
	if c.Duration < 0 {
		return errors.New(errors.CodeInvalidDuration).
			WithDetail(fmt.Sprintf("duration %d is negative.", c.Duration)).
			WithSuggestion(fmt.Sprintf("Use a duration in milliseconds; values below %d are raised to %d.",
				toast.MinDuration.Milliseconds(), toast.MinDuration.Milliseconds()))
	}
	if int64(c.Duration) > toast.MaxDurationMS {
		return errors.New(errors.CodeInvalidDuration).
			WithDetail(fmt.Sprintf("duration %d exceeds %d.", c.Duration, toast.MaxDurationMS))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New(errors.CodeInvalidPort).
			WithDetail(fmt.Sprintf("port %d is out of range.", c.Server.Port))
	}
	return nil
}

// ToastPosition returns the configured position.
// It assumes the config has been validated.
func (c *Config) ToastPosition() toast.Position {
	return toast.Position(c.Position)
}

// ToastDuration returns the configured duration.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Duration) * time.Millisecond
}

// Address returns the live server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the live server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}
