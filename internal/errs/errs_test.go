package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"movie-catalog/internal/errs"
)

func TestError_Error(t *testing.T) {
	err := &errs.Error{Code: errs.ENOTFOUND, Message: "Movie not found"}
	assert.Equal(t, "application error: code=not_found message=Movie not found", err.Error())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error returns empty string", err: nil, expected: ""},
		{name: "application error returns its code", err: errs.Errorf(errs.EINVALID, "bad"), expected: errs.EINVALID},
		{name: "wrapped application error", err: fmt.Errorf("get movie: %w", errs.Errorf(errs.ENOTFOUND, "missing")), expected: errs.ENOTFOUND},
		{name: "joined application error", err: errors.Join(errs.Errorf(errs.EUNAUTHORIZED, "no")), expected: errs.EUNAUTHORIZED},
		{name: "non-application error returns EINTERNAL", err: errors.New("disk full"), expected: errs.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errs.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error returns empty string", err: nil, expected: ""},
		{name: "application error returns its message", err: errs.Errorf(errs.EINVALID, "title %s", "missing"), expected: "title missing"},
		{name: "non-application error hides details", err: errors.New("pq: connection refused"), expected: "Internal error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errs.ErrorMessage(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("update: %w", errs.Errorf(errs.ENOTFOUND, "Movie not found"))

	assert.True(t, errs.Is(err, errs.ENOTFOUND))
	assert.False(t, errs.Is(err, errs.EINVALID))
	assert.False(t, errs.Is(nil, errs.EINTERNAL))
	assert.True(t, errs.Is(errors.New("boom"), errs.EINTERNAL))
}
