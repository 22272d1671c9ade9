// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/tbckr/lookupkit/internal/apiclient"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRequester stands in for *apiclient.Client in controller tests.
// DoFn decides the response; every call is recorded.
type MockRequester struct {
	DoFn func(ctx context.Context, r apiclient.Request) (json.RawMessage, error)

	mu    sync.Mutex
	calls []apiclient.Request
}

// Do implements lookup.Requester.
func (m *MockRequester) Do(ctx context.Context, r apiclient.Request) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, r)
	m.mu.Unlock()
	if m.DoFn != nil {
		return m.DoFn(ctx, r)
	}
	return json.RawMessage(`{}`), nil
}

// Calls returns a copy of the recorded requests.
func (m *MockRequester) Calls() []apiclient.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]apiclient.Request(nil), m.calls...)
}

// CallCount returns the number of recorded requests.
func (m *MockRequester) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
