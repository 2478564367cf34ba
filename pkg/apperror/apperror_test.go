package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))

	// Wrapped app errors keep their kind through fmt wrapping.
	wrapped := fmt.Errorf("outer: %w", Conflict("dup"))
	assert.Equal(t, KindConflict, KindOf(wrapped))

	// Plain errors default to internal.
	assert.Equal(t, KindInternal, KindOf(errors.New("driver: constraint failed")))
}

func TestMessageOfHidesInternalDetail(t *testing.T) {
	assert.Equal(t, "missing", MessageOf(NotFound("missing")))

	// Non-app errors never leak their text to clients.
	msg := MessageOf(errors.New("pq: duplicate key value violates unique constraint"))
	assert.NotContains(t, msg, "pq:")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindForbidden))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("unique constraint")
	err := Wrap(KindConflict, "already exists", cause)
	assert.ErrorIs(t, err, cause)
}
