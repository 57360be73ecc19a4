package sitegrab_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitegrab"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitegrab.Errorf(sitegrab.ENOCONTENT, "no content extracted from %s", "https://example.com")

	assert.Equal(t, sitegrab.ENOCONTENT, sitegrab.ErrorCode(err))
	assert.Equal(t, "no content extracted from https://example.com", sitegrab.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("storing record: %w", sitegrab.Errorf(sitegrab.ESTORAGE, "disk full"))

	assert.Equal(t, sitegrab.ESTORAGE, sitegrab.ErrorCode(err))
	assert.Equal(t, "disk full", sitegrab.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, sitegrab.EINTERNAL, sitegrab.ErrorCode(err))
	assert.Equal(t, "Internal error.", sitegrab.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitegrab.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitegrab.ErrorMessage(nil))
}
