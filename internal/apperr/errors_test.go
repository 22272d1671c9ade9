package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tbckr/lookupkit/internal/apperr"
)

func TestRequestError_MessageVerbatim(t *testing.T) {
	err := &apperr.RequestError{Kind: apperr.ErrApplication, Message: "upstream unavailable", Status: 500}
	assert.Equal(t, "upstream unavailable", err.Error())
	assert.ErrorIs(t, err, apperr.ErrApplication)
	assert.NotErrorIs(t, err, apperr.ErrTimeout)
}

func TestRequestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &apperr.RequestError{Kind: apperr.ErrTransport, Message: cause.Error(), Err: cause}
	assert.ErrorIs(t, err, apperr.ErrTransport)
	assert.ErrorIs(t, err, cause)
}

func TestKindName(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{apperr.ErrMissingInput, "missing_input"},
		{fmt.Errorf("wrapped: %w", apperr.ErrMalformedInput), "malformed_input"},
		{&apperr.RequestError{Kind: apperr.ErrTimeout}, "timeout"},
		{&apperr.RequestError{Kind: apperr.ErrTransport}, "transport_error"},
		{&apperr.RequestError{Kind: apperr.ErrApplication}, "application_error"},
		{&apperr.RequestError{Kind: apperr.ErrMalformedResponse}, "malformed_response"},
		{errors.New("boom"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindName(tt.err))
		})
	}
}
