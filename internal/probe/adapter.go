// Package probe wraps the external tools that can list nearby access points.
//
// An Adapter pairs one invocation (a command with a fixed argument list, or a
// pseudo-file read) with the parser for the text it prints. Invoking an adapter
// never fails: a missing tool, a non-zero exit or a timeout are recorded on the
// returned Attempt.
package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wifi_locator/core-go/internal/scanparse"
)

// InterfacePlaceholder is replaced by the interface name in scoped adapter args.
const InterfacePlaceholder = "{iface}"

// ErrNoInterfaces is recorded on scoped adapters when no wireless interface is known.
var ErrNoInterfaces = errors.New("no wireless interfaces found")

// Adapter is one discovery strategy.
type Adapter struct {
	Name      string
	Platforms []string
	// Command and Args are run when ReadPath is empty.
	Command string
	Args    []string
	// ReadPath makes the adapter read a file instead of running a command.
	ReadPath string
	// Scoped adapters run once per wireless interface.
	Scoped bool
	Parser scanparse.Spec
}

// Attempt captures what happened when an adapter was tried.
type Attempt struct {
	Adapter       string
	Applicable    bool
	Invoked       bool
	ExitSucceeded bool
	Stdout        string
	Stderr        string
	Err           error
	Duration      time.Duration
}

// Applicable reports whether the adapter is meaningful on goos.
func (a Adapter) Applicable(goos string) bool {
	for _, p := range a.Platforms {
		if p == goos {
			return true
		}
	}
	return false
}

// CommandLine renders the invocation for display.
func (a Adapter) CommandLine() string {
	if a.ReadPath != "" {
		return "read " + a.ReadPath
	}
	return strings.TrimSpace(a.Command + " " + strings.Join(a.Args, " "))
}

// Invoke runs the adapter. interfaces is only consulted by scoped adapters.
func (a Adapter) Invoke(ctx context.Context, r Runner, interfaces []string) Attempt {
	start := time.Now()
	att := Attempt{Adapter: a.Name, Applicable: true}

	switch {
	case a.ReadPath != "":
		att.Invoked = true
		out := r.ReadFile(ctx, a.ReadPath)
		att.Stdout, att.Stderr, att.Err = out.Stdout, out.Stderr, out.Err
		att.ExitSucceeded = out.Err == nil

	case a.Scoped:
		if len(interfaces) == 0 {
			att.Err = ErrNoInterfaces
			break
		}
		att.Invoked = true
		att = a.invokeScoped(ctx, r, interfaces, att)

	default:
		att.Invoked = true
		out := r.Run(ctx, a.Command, a.Args...)
		att.Stdout, att.Stderr, att.Err = out.Stdout, out.Stderr, out.Err
		att.ExitSucceeded = out.Err == nil
	}

	att.Duration = time.Since(start)
	return att
}

// invokeScoped runs the command for each interface. Output from successful runs
// is concatenated; failures are folded into Stderr and the first error kept.
func (a Adapter) invokeScoped(ctx context.Context, r Runner, interfaces []string, att Attempt) Attempt {
	var stdout, stderr strings.Builder
	for _, iface := range interfaces {
		if ctx.Err() != nil {
			if att.Err == nil {
				att.Err = ctx.Err()
			}
			break
		}

		args := make([]string, len(a.Args))
		for i, arg := range a.Args {
			args[i] = strings.ReplaceAll(arg, InterfacePlaceholder, iface)
		}

		out := r.Run(ctx, a.Command, args...)
		if out.Err != nil {
			if att.Err == nil {
				att.Err = out.Err
			}
			fmt.Fprintf(&stderr, "[%s] %v\n", iface, out.Err)
			if s := strings.TrimSpace(out.Stderr); s != "" {
				fmt.Fprintf(&stderr, "[%s] %s\n", iface, s)
			}
			continue
		}
		att.ExitSucceeded = true
		stdout.WriteString(out.Stdout)
		if !strings.HasSuffix(out.Stdout, "\n") {
			stdout.WriteString("\n")
		}
	}
	att.Stdout = stdout.String()
	att.Stderr = stderr.String()
	if att.ExitSucceeded {
		// At least one interface answered; per-interface failures stay in Stderr.
		att.Err = nil
	}
	return att
}

// Parse feeds the attempt's output to the adapter's parser. Output from a failed
// invocation is never parsed.
func (a Adapter) Parse(att Attempt) scanparse.Result {
	if !att.ExitSucceeded {
		return scanparse.Result{}
	}
	res := a.Parser.Parse(att.Stdout)
	if len(res.Candidates) == 0 && a.Parser.Format != scanparse.FormatPresence {
		res.Notes = append(res.Notes, "no access points in output")
	}
	return res
}
