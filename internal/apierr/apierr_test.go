package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, "boom", New(http.StatusInternalServerError, CodeInternal, cause).Error())
	assert.Equal(t, CodeQueueEmpty, New(http.StatusNotFound, CodeQueueEmpty, nil).Error())
	assert.Equal(t, "api error (418)", New(http.StatusTeapot, "", nil).Error())
	assert.Equal(t, "", (*Error)(nil).Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := New(http.StatusBadRequest, CodeBadRequest, cause)
	assert.True(t, errors.Is(err, cause))

	var apiErr *Error
	assert.True(t, errors.As(error(err), &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
