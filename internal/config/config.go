package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"wifi_locator/core-go/internal/discovery"
)

type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Scan  ScanConfig  `yaml:"scan"`
	Paths PathsConfig `yaml:"paths"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ScanConfig struct {
	Preset           string        `yaml:"preset"`
	AdapterTimeout   time.Duration `yaml:"adapter_timeout"`
	MaxRuntime       time.Duration `yaml:"max_runtime"`
	DiagnosticBytes  int           `yaml:"diagnostic_bytes"`
	DisabledAdapters []string      `yaml:"disabled_adapters"`
}

type PathsConfig struct {
	SysClassNet  string `yaml:"sys_class_net"`
	ProcWireless string `yaml:"proc_wireless"`
}

// Load reads path (when non-empty), applies env overrides and defaults, and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	envOr := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	envOr("HTTP_ADDR", &c.HTTP.Addr)
	envOr("LOG_LEVEL", &c.Log.Level)
	envOr("SCAN_PRESET", &c.Scan.Preset)

	envDuration := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}
	if err := envDuration("SCAN_ADAPTER_TIMEOUT", &c.Scan.AdapterTimeout); err != nil {
		return err
	}
	if err := envDuration("SCAN_MAX_RUNTIME", &c.Scan.MaxRuntime); err != nil {
		return err
	}
	if v, ok := lookup("SCAN_DIAGNOSTIC_BYTES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCAN_DIAGNOSTIC_BYTES: %w", err)
		}
		c.Scan.DiagnosticBytes = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8081"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Scan.Preset == "" {
		c.Scan.Preset = discovery.ScanPresetNormal
	}
	c.Scan.Preset = strings.ToLower(strings.TrimSpace(c.Scan.Preset))
	if c.Scan.AdapterTimeout == 0 {
		c.Scan.AdapterTimeout = 5 * time.Second
	}
	if c.Scan.MaxRuntime == 0 {
		c.Scan.MaxRuntime = 30 * time.Second
	}
	if c.Scan.DiagnosticBytes == 0 {
		c.Scan.DiagnosticBytes = discovery.DefaultDiagnosticBytes
	}
	if c.Paths.SysClassNet == "" {
		c.Paths.SysClassNet = "/sys/class/net"
	}
	if c.Paths.ProcWireless == "" {
		c.Paths.ProcWireless = "/proc/net/wireless"
	}
}

func (c *Config) validate() error {
	if !discovery.IsKnownPreset(c.Scan.Preset) {
		return fmt.Errorf("scan.preset must be fast, normal or deep, got %q", c.Scan.Preset)
	}
	if unknown := discovery.ValidateAdapterNames(c.Scan.DisabledAdapters); len(unknown) > 0 {
		return fmt.Errorf("scan.disabled_adapters: unknown adapters %v", unknown)
	}
	if c.Scan.AdapterTimeout < 0 {
		return errors.New("scan.adapter_timeout must be positive")
	}
	if c.Scan.MaxRuntime < 0 {
		return errors.New("scan.max_runtime must be positive")
	}
	if c.Scan.MaxRuntime < c.Scan.AdapterTimeout {
		return fmt.Errorf("scan.max_runtime (%s) is shorter than scan.adapter_timeout (%s)", c.Scan.MaxRuntime, c.Scan.AdapterTimeout)
	}
	if c.Scan.DiagnosticBytes < 0 {
		return errors.New("scan.diagnostic_bytes must be positive")
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	return nil
}

// DiscoveryOptions maps the scan and path settings onto the discovery service.
func (c *Config) DiscoveryOptions() discovery.Options {
	return discovery.Options{
		Preset:           c.Scan.Preset,
		AdapterTimeout:   c.Scan.AdapterTimeout,
		MaxRuntime:       c.Scan.MaxRuntime,
		DiagnosticBytes:  c.Scan.DiagnosticBytes,
		DisabledAdapters: c.Scan.DisabledAdapters,
		SysClassNet:      c.Paths.SysClassNet,
		ProcWirelessPath: c.Paths.ProcWireless,
	}
}
