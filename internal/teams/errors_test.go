package teams

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{name: "ok", status: http.StatusOK, expected: nil},
		{name: "accepted", status: http.StatusAccepted, expected: nil},
		{name: "unauthorised", status: http.StatusUnauthorized, expected: ErrUnauthorised},
		{name: "forbidden", status: http.StatusForbidden, expected: ErrForbidden},
		{name: "rate limited", status: http.StatusTooManyRequests, expected: ErrRateLimited},
		{name: "bad request", status: http.StatusBadRequest, expected: ErrBadRequest},
		{name: "not found", status: http.StatusNotFound, expected: ErrBadRequest},
		{name: "server error", status: http.StatusInternalServerError, expected: ErrServerError},
		{name: "bad gateway", status: http.StatusBadGateway, expected: ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expected == nil {
				assert.NoError(t, WrapError(tt.status))
				return
			}
			assert.ErrorIs(t, WrapError(tt.status), tt.expected)
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(http.StatusTooManyRequests))
	assert.False(t, IsRateLimited(http.StatusOK))
}
