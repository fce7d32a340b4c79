package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nomis52/fitstats/batch"
	"github.com/nomis52/fitstats/logging"
	"github.com/nomis52/fitstats/report"
	"github.com/nomis52/fitstats/schedule"
)

const (
	// Default monitoring settings
	defaultMetricsPrefix = "fitstats"
	defaultJobName       = "fitstats"
	defaultPushTimeout   = 30 * time.Second

	// Default logging settings
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultLogOutput = "stderr"
)

// Config represents the complete application configuration
type Config struct {
	Logging    logging.Config   `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	// Schedule is a five field cron expression. Empty runs the batch once.
	Schedule string          `yaml:"schedule"`
	Packages []batch.Package `yaml:"packages"`
}

// OutputConfig selects where summary lines are written
type OutputConfig struct {
	// Destination is stdout, stderr, log or a file path
	Destination string `yaml:"destination"`
}

// MonitoringConfig holds metrics settings
type MonitoringConfig struct {
	// VictoriaMetricsURL enables push mode when set
	VictoriaMetricsURL string        `yaml:"victoriametrics_url"`
	MetricsPrefix      string        `yaml:"metrics_prefix"`
	JobName            string        `yaml:"jobname"`
	PushTimeout        time.Duration `yaml:"push_timeout"`
	// ListenAddress serves /metrics in scrape mode while a schedule is running
	ListenAddress string `yaml:"listen_address"`
}

// BehaviorConfig defines processing behavior
type BehaviorConfig struct {
	FailFast bool `yaml:"fail_fast"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.Output.Destination == "" {
		return fmt.Errorf("output destination is required")
	}
	if c.Monitoring.VictoriaMetricsURL != "" && c.Monitoring.ListenAddress != "" {
		return fmt.Errorf("monitoring listen address cannot be combined with a VictoriaMetrics URL")
	}
	if c.Monitoring.ListenAddress != "" && c.Schedule == "" {
		return fmt.Errorf("monitoring listen address requires a schedule")
	}
	if c.Monitoring.PushTimeout < 0 {
		return fmt.Errorf("push timeout must not be negative")
	}
	if c.Schedule != "" {
		if err := schedule.Validate(c.Schedule); err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
	}
	for i, pkg := range c.Packages {
		if pkg.Code == "" {
			return fmt.Errorf("package %d: code is required", i)
		}
	}
	return nil
}

// SetDefaults sets reasonable default values for optional fields
func (c *Config) SetDefaults() {
	if c.Output.Destination == "" {
		c.Output.Destination = report.DestinationStdout
	}
	if c.Monitoring.MetricsPrefix == "" {
		c.Monitoring.MetricsPrefix = defaultMetricsPrefix
	}
	if c.Monitoring.JobName == "" {
		c.Monitoring.JobName = defaultJobName
	}
	if c.Monitoring.PushTimeout == 0 {
		c.Monitoring.PushTimeout = defaultPushTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	// Summaries go to stdout by default, so logs stay on stderr.
	if c.Logging.Output == "" {
		c.Logging.Output = defaultLogOutput
	}
	if len(c.Packages) == 0 {
		c.Packages = batch.DefaultPackages()
	}
}

// LoadConfig reads the YAML config file at the given path and returns a Config struct
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
