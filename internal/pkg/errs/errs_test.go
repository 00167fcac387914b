package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"authentication", ErrInvalidCredential, http.StatusUnauthorized},
		{"authorization", ErrUnauthorizedRide, http.StatusForbidden},
		{"not found", ErrRideNotFound, http.StatusNotFound},
		{"conflict", ErrInsufficientBalance, http.StatusConflict},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage_HidesInternalDetail(t *testing.T) {
	assert.Equal(t, "internal server error", Message(Internal(errors.New("pq: connection refused"))))
	assert.Equal(t, "internal server error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "insufficient wallet balance", Message(ErrInsufficientBalance))
}

func TestSentinelsCompareWithErrorsIs(t *testing.T) {
	var err error = ErrRideNotPending
	assert.ErrorIs(t, err, ErrRideNotPending)
	assert.NotErrorIs(t, err, ErrRideNotFound)
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	wrapped := &Error{Kind: KindConflict, Message: "outer", Err: errors.New("inner")}
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "outer: inner", wrapped.Error())
}
