package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wifi_locator/core-go/internal/metrics"
	"wifi_locator/core-go/internal/probe"
	"wifi_locator/core-go/internal/wifi"
)

// Chain tries adapters in order and stops at the first one whose output yields
// at least one valid record.
//
// A Chain holds no state between runs; callers build one per invocation.
type Chain struct {
	Adapters []probe.Adapter
	Runner   probe.Runner
	GOOS     string
	// Interfaces is called at most once, when the first scoped adapter is reached.
	Interfaces      func(ctx context.Context) []string
	DiagnosticBytes int
	Log             zerolog.Logger
	Metrics         *metrics.Metrics
}

// Run walks the chain: idle -> probing(i) -> probing(i+1) | succeeded | exhausted.
func (c Chain) Run(ctx context.Context) Result {
	var (
		reports      []AttemptReport
		interfaces   []string
		ifacesLoaded bool
	)

	for i, a := range c.Adapters {
		if ctx.Err() != nil {
			break
		}

		if !a.Applicable(c.GOOS) {
			reports = append(reports, newAttemptReport(a, probe.Attempt{Adapter: a.Name}, nil, "skipped", c.DiagnosticBytes))
			c.Metrics.IncAdapterAttempt(a.Name, "skipped")
			continue
		}

		var notes []string
		if a.Scoped {
			if !ifacesLoaded && c.Interfaces != nil {
				interfaces = c.Interfaces(ctx)
			}
			ifacesLoaded = true
			if len(interfaces) > 0 {
				notes = append(notes, "interfaces: "+strings.Join(interfaces, ", "))
			}
		}

		c.Log.Debug().Int("step", i).Str("adapter", a.Name).Str("command", a.CommandLine()).Msg("probing adapter")

		att := a.Invoke(ctx, c.Runner, interfaces)
		parsed := a.Parse(att)
		records := wifi.Aggregate(parsed.Candidates)
		result := attemptResult(att, len(records))
		c.Metrics.IncAdapterAttempt(a.Name, result)

		c.Log.Debug().
			Str("adapter", a.Name).
			Bool("invoked", att.Invoked).
			Bool("exit_succeeded", att.ExitSucceeded).
			Int("candidates", len(parsed.Candidates)).
			Int("records", len(records)).
			Str("result", result).
			Dur("duration", att.Duration).
			AnErr("attempt_error", att.Err).
			Msg("adapter attempted")

		if len(records) > 0 {
			return Result{Outcome: OutcomeSucceeded, Adapter: a.Name, Records: records}
		}

		notes = append(notes, parsed.Notes...)
		reports = append(reports, newAttemptReport(a, att, notes, result, c.DiagnosticBytes))
	}

	canceled := ctx.Err() != nil
	if canceled {
		c.Log.Debug().Err(ctx.Err()).Int("attempted", len(reports)).Msg("discovery chain canceled")
	}
	return Result{Outcome: OutcomeExhausted, Diagnostic: Report(reports, c.GOOS, canceled)}
}

func attemptResult(att probe.Attempt, records int) string {
	switch {
	case records > 0:
		return "records"
	case att.Err != nil:
		return probe.Classify(att.Err)
	case !att.Invoked:
		return "skipped"
	default:
		return "empty"
	}
}

func (c Chain) String() string {
	names := make([]string, 0, len(c.Adapters))
	for _, a := range c.Adapters {
		names = append(names, a.Name)
	}
	return fmt.Sprintf("chain[%s](%s)", c.GOOS, strings.Join(names, " -> "))
}
