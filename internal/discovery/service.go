// Package discovery runs the ordered adapter chain that turns host tooling
// output into a deduplicated list of nearby access points.
package discovery

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wifi_locator/core-go/internal/ifaces"
	"wifi_locator/core-go/internal/metrics"
	"wifi_locator/core-go/internal/probe"
)

// Request is one scan request.
type Request struct {
	Location Location
	Preset   string
	// Only restricts the chain to the named adapters, keeping catalog order.
	Only []string
}

// AdapterInfo describes a catalog entry for listings.
type AdapterInfo struct {
	Name       string   `json:"name"`
	Platforms  []string `json:"platforms"`
	Command    string   `json:"command"`
	Format     string   `json:"format"`
	Scoped     bool     `json:"scoped"`
	Applicable bool     `json:"applicable"`
	Enabled    bool     `json:"enabled"`
}

type Service struct {
	log              zerolog.Logger
	goos             string
	preset           string
	adapterTimeout   time.Duration
	maxRuntime       time.Duration
	diagnosticBytes  int
	disabledAdapters []string
	sysClassNet      string
	procWirelessPath string
	runner           probe.Runner
	metrics          *metrics.Metrics
}

type Options struct {
	GOOS             string
	Preset           string
	AdapterTimeout   time.Duration
	MaxRuntime       time.Duration
	DiagnosticBytes  int
	DisabledAdapters []string
	SysClassNet      string
	ProcWirelessPath string
	// Runner overrides host access; nil runs real processes.
	Runner probe.Runner
}

func New(log zerolog.Logger, opts Options, m *metrics.Metrics) *Service {
	goos := strings.TrimSpace(opts.GOOS)
	if goos == "" {
		goos = runtime.GOOS
	}
	at := opts.AdapterTimeout
	if at <= 0 {
		at = 5 * time.Second
	}
	mr := opts.MaxRuntime
	if mr <= 0 {
		mr = 30 * time.Second
	}
	db := opts.DiagnosticBytes
	if db <= 0 {
		db = DefaultDiagnosticBytes
	}
	sysClassNet := opts.SysClassNet
	if strings.TrimSpace(sysClassNet) == "" {
		sysClassNet = ifaces.DefaultSysClassNet
	}
	procPath := opts.ProcWirelessPath
	if strings.TrimSpace(procPath) == "" {
		procPath = probe.DefaultProcWirelessPath
	}
	disabled, unknown := canonicalizeAdapterNames(opts.DisabledAdapters)
	if len(unknown) > 0 {
		log.Warn().Strs("adapters", unknown).Msg("ignoring unknown disabled adapters")
	}

	return &Service{
		log:              log,
		goos:             goos,
		preset:           canonicalizeScanPreset(opts.Preset),
		adapterTimeout:   at,
		maxRuntime:       mr,
		diagnosticBytes:  db,
		disabledAdapters: disabled,
		sysClassNet:      sysClassNet,
		procWirelessPath: procPath,
		runner:           opts.Runner,
		metrics:          m,
	}
}

// Discover runs one independent scan. The location is logged for audit only.
//
// Cancelling ctx stops the in-flight tool and yields an exhausted result with
// the diagnostics gathered so far.
func (s *Service) Discover(ctx context.Context, req Request) Result {
	start := time.Now()

	preset := s.preset
	if strings.TrimSpace(req.Preset) != "" {
		preset = canonicalizeScanPreset(req.Preset)
	}
	budget := applyScanPreset(scanBudget{adapterTimeout: s.adapterTimeout, maxRuntime: s.maxRuntime}, preset)

	execCtx, cancel := context.WithTimeout(ctx, budget.maxRuntime)
	defer cancel()

	runner := s.runner
	if runner == nil {
		runner = probe.ExecRunner{Timeout: budget.adapterTimeout}
	}

	log := s.log.With().
		Str("building", req.Location.Building).
		Str("room", req.Location.Room).
		Str("preset", preset).
		Logger()

	adapters, emptyReason := s.chainAdapters(log, req.Only)
	chain := Chain{
		Adapters:        adapters,
		Runner:          runner,
		GOOS:            s.goos,
		DiagnosticBytes: s.diagnosticBytes,
		Log:             log,
		Metrics:         s.metrics,
		Interfaces: func(ctx context.Context) []string {
			found, tier := ifaces.Enumerator{SysClassNet: s.sysClassNet, Runner: runner}.List(ctx)
			names := ifaces.Names(found)
			log.Debug().Str("tier", string(tier)).Strs("interfaces", names).Msg("wireless interfaces enumerated")
			return names
		},
	}

	log.Info().Str("chain", chain.String()).Msg("scan requested")

	res := chain.Run(execCtx)
	if emptyReason != "" && res.Diagnostic != nil && !res.Diagnostic.Canceled {
		res.Diagnostic.Message = "No adapters selected - adjust the adapter restriction"
		res.Diagnostic.Hints = append([]string{emptyReason}, res.Diagnostic.Hints...)
	}
	duration := time.Since(start)
	s.metrics.ObserveScan(string(res.Outcome), duration)

	evt := log.Info()
	if res.Outcome != OutcomeSucceeded {
		evt = log.Warn().Int("attempts", len(res.Diagnostic.Attempts)).Bool("canceled", res.Diagnostic.Canceled)
	}
	evt.Str("outcome", string(res.Outcome)).
		Str("adapter", res.Adapter).
		Int("records", len(res.Records)).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("scan finished")

	return res
}

// chainAdapters returns the adapters to run and, when a restriction leaves
// nothing to run, the reason for the diagnostic.
func (s *Service) chainAdapters(log zerolog.Logger, only []string) ([]probe.Adapter, string) {
	catalog := probe.Catalog(probe.CatalogOptions{ProcWirelessPath: s.procWirelessPath})

	known, unknown := canonicalizeAdapterNames(only)
	if len(unknown) > 0 {
		log.Warn().Strs("adapters", unknown).Msg("ignoring unknown adapters in request")
	}
	// Blank entries restrict nothing.
	if len(known) == 0 && len(unknown) == 0 {
		return selectAdapters(catalog, s.disabledAdapters, nil), ""
	}
	if len(known) == 0 {
		return nil, fmt.Sprintf("Requested adapters are not in the catalog: %s", strings.Join(unknown, ", "))
	}

	selected := selectAdapters(catalog, s.disabledAdapters, known)
	if len(selected) == 0 {
		return nil, fmt.Sprintf("Requested adapters are disabled by scan.disabled_adapters: %s", strings.Join(known, ", "))
	}
	return selected, ""
}

// Adapters lists the catalog with applicability for this host.
func (s *Service) Adapters() []AdapterInfo {
	catalog := probe.Catalog(probe.CatalogOptions{ProcWirelessPath: s.procWirelessPath})
	enabled := map[string]struct{}{}
	for _, a := range selectAdapters(catalog, s.disabledAdapters, nil) {
		enabled[a.Name] = struct{}{}
	}

	out := make([]AdapterInfo, 0, len(catalog))
	for _, a := range catalog {
		_, on := enabled[a.Name]
		out = append(out, AdapterInfo{
			Name:       a.Name,
			Platforms:  a.Platforms,
			Command:    a.CommandLine(),
			Format:     string(a.Parser.Format),
			Scoped:     a.Scoped,
			Applicable: a.Applicable(s.goos),
			Enabled:    on,
		})
	}
	return out
}

// Interfaces runs the enumerator on its own, for troubleshooting.
func (s *Service) Interfaces(ctx context.Context) ([]ifaces.Interface, ifaces.Tier) {
	runner := s.runner
	if runner == nil {
		runner = probe.ExecRunner{Timeout: s.adapterTimeout}
	}
	return ifaces.Enumerator{SysClassNet: s.sysClassNet, Runner: runner}.List(ctx)
}

// MaxRuntime is the longest a single scan may run under any preset.
func (s *Service) MaxRuntime() time.Duration {
	return applyScanPreset(scanBudget{adapterTimeout: s.adapterTimeout, maxRuntime: s.maxRuntime}, ScanPresetDeep).maxRuntime
}

// GOOS is the platform the service selects adapters for.
func (s *Service) GOOS() string { return s.goos }

// Ready reports whether any enabled adapter applies to this platform.
func (s *Service) Ready() bool {
	for _, a := range s.Adapters() {
		if a.Applicable && a.Enabled {
			return true
		}
	}
	return false
}
