package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HTTP_ADDR", "LOG_LEVEL", "SCAN_PRESET", "SCAN_ADAPTER_TIMEOUT", "SCAN_MAX_RUNTIME", "SCAN_DIAGNOSTIC_BYTES"} {
		t.Setenv(k, "")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
scan:
  disabled_adapters: [airport-shell, netsh-shell]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":8081" {
		t.Fatalf("expected default addr :8081, got %s", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Scan.Preset != "normal" {
		t.Fatalf("expected default preset normal, got %s", cfg.Scan.Preset)
	}
	if cfg.Scan.AdapterTimeout != 5*time.Second || cfg.Scan.MaxRuntime != 30*time.Second {
		t.Fatalf("unexpected default budget %s/%s", cfg.Scan.AdapterTimeout, cfg.Scan.MaxRuntime)
	}
	if cfg.Scan.DiagnosticBytes != 2048 {
		t.Fatalf("expected default diagnostic bytes 2048, got %d", cfg.Scan.DiagnosticBytes)
	}
	if cfg.Paths.SysClassNet != "/sys/class/net" || cfg.Paths.ProcWireless != "/proc/net/wireless" {
		t.Fatalf("unexpected default paths %+v", cfg.Paths)
	}
	if !reflect.DeepEqual(cfg.Scan.DisabledAdapters, []string{"airport-shell", "netsh-shell"}) {
		t.Fatalf("unexpected disabled adapters %v", cfg.Scan.DisabledAdapters)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Scan.Preset != "normal" {
		t.Fatalf("expected normal preset, got %s", cfg.Scan.Preset)
	}
}

func TestLoadParsesDurations(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
http:
  addr: 127.0.0.1:9000
scan:
  preset: Deep
  adapter_timeout: 3s
  max_runtime: 1m
  diagnostic_bytes: 512
paths:
  sys_class_net: /tmp/net
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Scan.AdapterTimeout != 3*time.Second || cfg.Scan.MaxRuntime != time.Minute {
		t.Fatalf("unexpected budget %s/%s", cfg.Scan.AdapterTimeout, cfg.Scan.MaxRuntime)
	}
	if cfg.Scan.Preset != "deep" {
		t.Fatalf("expected preset canonicalized to deep, got %q", cfg.Scan.Preset)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" || cfg.Scan.DiagnosticBytes != 512 || cfg.Paths.SysClassNet != "/tmp/net" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCAN_PRESET", "fast")
	t.Setenv("SCAN_ADAPTER_TIMEOUT", "750ms")
	t.Setenv("SCAN_MAX_RUNTIME", "90s")
	t.Setenv("SCAN_DIAGNOSTIC_BYTES", "")

	path := writeConfig(t, "http:\n  addr: \":8000\"\nscan:\n  preset: deep\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.Addr != ":7000" || cfg.Log.Level != "debug" || cfg.Scan.Preset != "fast" {
		t.Fatalf("env must override file values, got %+v", cfg)
	}
	if cfg.Scan.AdapterTimeout != 750*time.Millisecond {
		t.Fatalf("expected 750ms adapter timeout, got %s", cfg.Scan.AdapterTimeout)
	}
	if cfg.Scan.MaxRuntime != 90*time.Second {
		t.Fatalf("expected 90s max runtime, got %s", cfg.Scan.MaxRuntime)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
		env  map[string]string
		want string
	}{
		{name: "unknown preset", data: "scan:\n  preset: turbo\n", want: "scan.preset"},
		{name: "runtime below timeout", data: "scan:\n  adapter_timeout: 10s\n  max_runtime: 2s\n", want: "scan.max_runtime"},
		{name: "negative diagnostic bytes", data: "scan:\n  diagnostic_bytes: -1\n", want: "scan.diagnostic_bytes"},
		{name: "unknown disabled adapter", data: "scan:\n  disabled_adapters: [nmcli, wpa_cli]\n", want: "wpa_cli"},
		{name: "bad yaml", data: "scan: [\n", want: "parse"},
		{name: "bad env duration", data: "", env: map[string]string{"SCAN_ADAPTER_TIMEOUT": "soon"}, want: "SCAN_ADAPTER_TIMEOUT"},
		{name: "bad env max runtime", data: "", env: map[string]string{"SCAN_MAX_RUNTIME": "later"}, want: "SCAN_MAX_RUNTIME"},
		{name: "env runtime below timeout", data: "scan:\n  adapter_timeout: 10s\n", env: map[string]string{"SCAN_MAX_RUNTIME": "3s"}, want: "scan.max_runtime"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDiscoveryOptions(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "scan:\n  preset: fast\n  disabled_adapters: [iw]\npaths:\n  proc_wireless: /tmp/wireless\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	opts := cfg.DiscoveryOptions()
	if opts.Preset != "fast" || opts.AdapterTimeout != 5*time.Second || opts.ProcWirelessPath != "/tmp/wireless" {
		t.Fatalf("unexpected options %+v", opts)
	}
	if !reflect.DeepEqual(opts.DisabledAdapters, []string{"iw"}) || opts.Runner != nil {
		t.Fatalf("unexpected options %+v", opts)
	}
}
