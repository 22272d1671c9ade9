// Package lookup implements the per-tool lookup state machine: validate the
// input, issue one backend call, and apply its outcome only if no newer
// submission has been made in the meantime.
package lookup

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/tbckr/lookupkit/internal/apiclient"
	"github.com/tbckr/lookupkit/internal/apperr"
	"github.com/tbckr/lookupkit/internal/validate"
)

// Requester issues one backend call. *apiclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, r apiclient.Request) (json.RawMessage, error)
}

// Tool is the static description of one lookup screen.
type Tool struct {
	Name   string
	Method string
	Path   string
	// Field is the JSON body key (or query parameter for GET) carrying the value.
	Field   string
	Accepts []validate.Kind
	// Timeout overrides the request client's default when positive.
	Timeout time.Duration
}

// Request builds the backend request for an accepted value.
func (t Tool) Request(value string) apiclient.Request {
	r := apiclient.Request{Method: t.Method, Path: t.Path, Timeout: t.Timeout}
	if r.Method == "" {
		r.Method = http.MethodPost
	}
	if t.Field == "" {
		return r
	}
	if r.Method == http.MethodGet {
		r.Path += "?" + url.Values{t.Field: {value}}.Encode()
		return r
	}
	r.Body = map[string]string{t.Field: value}
	return r
}

// Controller owns the State of one tool. Submit is its only mutator.
// It is safe for concurrent use.
type Controller struct {
	tool      Tool
	validator *validate.Validator
	requester Requester
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	// seq is the latest issued submission number.
	seq uint64
	// rev counts transitions so notifications are delivered in order.
	rev uint64

	notifyMu  sync.Mutex
	delivered uint64
	subs      map[int]func(State)
	nextSub   int
}

// New creates a Controller in PhaseIdle. A nil validator means validate.New().
func New(tool Tool, validator *validate.Validator, requester Requester, logger *slog.Logger) *Controller {
	if validator == nil {
		validator = validate.New()
	}
	return &Controller{
		tool:      tool,
		validator: validator,
		requester: requester,
		logger:    logger.With("tool", tool.Name),
		state:     State{Tool: tool.Name, Phase: PhaseIdle},
		subs:      make(map[int]func(State)),
	}
}

// Tool returns the tool description.
func (c *Controller) Tool() Tool { return c.tool }

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to be called with every state transition, in order.
// fn must not call Submit synchronously. The returned function unregisters fn.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.notifyMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.notifyMu.Unlock()
	return func() {
		c.notifyMu.Lock()
		delete(c.subs, id)
		c.notifyMu.Unlock()
	}
}

// Submit starts a new lookup for text, superseding any lookup in flight.
//
// Validation runs synchronously; rejected input never reaches the requester.
// Accepted input is sent on a new goroutine. The returned channel receives
// the state once this submission settles and is then closed. A superseded
// submission settles with the state current at the time its response
// arrived; its own result is discarded.
func (c *Controller) Submit(ctx context.Context, text string) <-chan State {
	done := make(chan State, 1)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = State{Tool: c.tool.Name, Input: text, Phase: PhaseValidating, Seq: seq}
	validating := c.snapshot()

	res := c.validator.Validate(text, c.tool.Accepts...)
	c.state.Validation = res
	if !res.Accepted {
		err := res.Err()
		c.state.Phase = PhaseRejected
		c.state.Error = res.Message
		c.state.ErrorKind = apperr.KindName(err)
		c.state.err = err
		rejected := c.snapshot()
		c.mu.Unlock()

		c.logger.Debug("input rejected", "seq", seq, "reason", res.Reason.String())
		c.notify(validating)
		c.notify(rejected)
		done <- rejected.State
		close(done)
		return done
	}

	c.state.Phase = PhaseSubmitting
	submitting := c.snapshot()
	c.mu.Unlock()

	c.notify(validating)
	c.notify(submitting)

	request := c.tool.Request(res.Value)
	c.logger.Debug("lookup submitted", "seq", seq, "kind", res.Kind.String(), "path", request.Path)

	go func() {
		defer close(done)
		payload, err := c.requester.Do(ctx, request)
		done <- c.settle(seq, payload, err)
	}()
	return done
}

// Lookup submits text and waits for it to settle.
func (c *Controller) Lookup(ctx context.Context, text string) State {
	return <-c.Submit(ctx, text)
}

// settle applies a response if seq is still the latest submission.
func (c *Controller) settle(seq uint64, payload json.RawMessage, err error) State {
	c.mu.Lock()
	if seq != c.seq {
		current := c.state.clone()
		c.mu.Unlock()
		c.logger.Debug("discarding stale response", "seq", seq, "current", current.Seq)
		return current
	}

	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Error = err.Error()
		c.state.ErrorKind = apperr.KindName(err)
		c.state.err = err
	} else {
		c.state.Phase = PhaseSucceeded
		c.state.Payload = payload
	}
	final := c.snapshot()
	c.mu.Unlock()

	if err != nil {
		c.logger.Debug("lookup failed", "seq", seq, "kind", final.ErrorKind, "error", final.Error)
	} else {
		c.logger.Debug("lookup succeeded", "seq", seq, "bytes", len(payload))
	}
	c.notify(final)
	return final.State
}

type revState struct {
	State
	rev uint64
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() revState {
	c.rev++
	return revState{State: c.state.clone(), rev: c.rev}
}

// notify delivers s to subscribers unless a later transition was already delivered.
func (c *Controller) notify(s revState) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if s.rev <= c.delivered {
		return
	}
	c.delivered = s.rev
	for _, fn := range c.subs {
		fn(s.State)
	}
}
