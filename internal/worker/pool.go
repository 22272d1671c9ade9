// Package worker runs bulk lookups with bounded concurrency.
package worker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tbckr/lookupkit/internal/lookup"
	"github.com/tbckr/lookupkit/internal/validate"
)

// Result is the settled state of one input.
type Result struct {
	Input string
	State lookup.State
}

// Failed reports whether the lookup ended rejected or failed.
func (r Result) Failed() bool { return r.State.ShowError() }

// Pool looks up inputs for one tool. Every input gets its own controller, so
// lookups never supersede each other.
type Pool struct {
	tool      lookup.Tool
	validator *validate.Validator
	requester lookup.Requester
	size      int
	logger    *slog.Logger
}

// NewPool creates a Pool running at most size lookups at once.
// A size below 1 is treated as 1.
func NewPool(tool lookup.Tool, validator *validate.Validator, requester lookup.Requester, size int, logger *slog.Logger) *Pool {
	return &Pool{
		tool:      tool,
		validator: validator,
		requester: requester,
		size:      max(size, 1),
		logger:    logger,
	}
}

// Run looks up every input and returns the results in input order.
// Inputs not yet started when ctx is done are reported as failed with the
// context error.
func (p *Pool) Run(ctx context.Context, inputs []string) []Result {
	results := make([]Result, len(inputs))
	g := new(errgroup.Group)
	g.SetLimit(p.size)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			results[i] = Result{Input: in, State: p.lookup(ctx, in)}
			return nil
		})
	}
	_ = g.Wait()
	p.logger.Debug("bulk lookup finished", "tool", p.tool.Name, "inputs", len(inputs), "concurrency", p.size)
	return results
}

func (p *Pool) lookup(ctx context.Context, in string) lookup.State {
	if err := ctx.Err(); err != nil {
		return lookup.Cancelled(p.tool.Name, in, err)
	}
	return lookup.New(p.tool, p.validator, p.requester, p.logger).Lookup(ctx, in)
}
