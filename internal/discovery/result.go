package discovery

import (
	"errors"
	"fmt"

	"wifi_locator/core-go/internal/wifi"
)

// Outcome is the terminal state of one discovery chain invocation.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeExhausted Outcome = "exhausted"
)

// ErrNoDataAvailable is wrapped by NoDataError when every adapter came up empty.
var ErrNoDataAvailable = errors.New("no wifi data available")

// Location is the physical place a scan is associated with. The core only logs it.
type Location struct {
	Building string `json:"building"`
	Room     string `json:"room"`
}

// Result is either an ordered set of records or a diagnostic payload, never both.
type Result struct {
	Outcome    Outcome       `json:"outcome"`
	Adapter    string        `json:"adapter,omitempty"`
	Records    []wifi.Record `json:"records,omitempty"`
	Diagnostic *Diagnostic   `json:"diagnostic,omitempty"`
}

// Diagnostic explains why no adapter produced records.
type Diagnostic struct {
	Message  string          `json:"message"`
	Attempts []AttemptReport `json:"attempts"`
	Hints    []string        `json:"hints"`
	Canceled bool            `json:"canceled,omitempty"`
}

// AttemptReport is the rendered form of one adapter attempt.
type AttemptReport struct {
	Adapter       string   `json:"adapter"`
	Command       string   `json:"command,omitempty"`
	Applicable    bool     `json:"applicable"`
	Invoked       bool     `json:"invoked"`
	ExitSucceeded bool     `json:"exit_succeeded"`
	Result        string   `json:"result"`
	Error         string   `json:"error,omitempty"`
	Notes         []string `json:"notes,omitempty"`
	Stdout        string   `json:"stdout,omitempty"`
	Stderr        string   `json:"stderr,omitempty"`
	Truncated     bool     `json:"truncated,omitempty"`
	DurationMS    int64    `json:"duration_ms"`
}

// NoDataError carries the diagnostic through an error channel.
type NoDataError struct {
	Diagnostic *Diagnostic
}

func (e *NoDataError) Error() string {
	if e == nil || e.Diagnostic == nil {
		return ErrNoDataAvailable.Error()
	}
	return fmt.Sprintf("%s: %s (%d adapters attempted)", ErrNoDataAvailable, e.Diagnostic.Message, len(e.Diagnostic.Attempts))
}

func (e *NoDataError) Unwrap() error { return ErrNoDataAvailable }

// Err returns nil for a successful result and a *NoDataError otherwise.
func (r Result) Err() error {
	if r.Outcome == OutcomeSucceeded {
		return nil
	}
	return &NoDataError{Diagnostic: r.Diagnostic}
}
