package lookup

import (
	"encoding/json"

	"github.com/tbckr/lookupkit/internal/apiclient"
	"github.com/tbckr/lookupkit/internal/apperr"
	"github.com/tbckr/lookupkit/internal/validate"
)

// Phase is the controller's position in the lookup cycle.
type Phase int

// Phases. A new submission from any phase re-enters PhaseValidating.
const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseRejected
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseRejected:
		return "rejected"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Terminal reports whether p ends a submission.
func (p Phase) Terminal() bool {
	return p == PhaseRejected || p == PhaseSucceeded || p == PhaseFailed
}

// State is a snapshot of one controller. Exactly one of Payload (succeeded)
// or Error (rejected, failed) is set in a terminal phase.
type State struct {
	Tool       string          `json:"tool"`
	Input      string          `json:"input"`
	Validation validate.Result `json:"validation"`
	Phase      Phase           `json:"phase"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Error      string          `json:"error,omitempty"`
	ErrorKind  string          `json:"error_kind,omitempty"`
	Seq        uint64          `json:"seq"`

	err error
}

// Err returns the error behind a rejected or failed state, or nil.
func (s State) Err() error { return s.err }

// Loading reports whether a loading indicator should be shown.
func (s State) Loading() bool { return s.Phase == PhaseSubmitting }

// ShowError reports whether an error banner should be shown.
func (s State) ShowError() bool { return s.Phase == PhaseRejected || s.Phase == PhaseFailed }

// ShowResults reports whether the results view should be shown.
func (s State) ShowResults() bool { return s.Phase == PhaseSucceeded }

// Cancelled returns the failed state of an input that was never submitted
// because its context ended first.
func Cancelled(tool, input string, cause error) State {
	err := &apperr.RequestError{Kind: apperr.ErrTransport, Message: apiclient.MsgCancelled, Err: cause}
	return State{
		Tool:      tool,
		Input:     input,
		Phase:     PhaseFailed,
		Error:     err.Error(),
		ErrorKind: apperr.KindName(err),
		err:       err,
	}
}

func (s State) clone() State {
	if s.Payload != nil {
		s.Payload = append(json.RawMessage(nil), s.Payload...)
	}
	return s
}
