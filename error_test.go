package docmirror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docmirror.Errorf(docmirror.ETRANSPORT, "fetch %q: timeout", "https://example.com")

	assert.Equal(t, docmirror.ETRANSPORT, docmirror.ErrorCode(err))
	assert.Equal(t, "fetch \"https://example.com\": timeout", docmirror.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docmirror.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docmirror.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("write page: %w", docmirror.Errorf(docmirror.EFILESYSTEM, "disk full"))

	assert.Equal(t, docmirror.EFILESYSTEM, docmirror.ErrorCode(err))
	assert.Equal(t, "disk full", docmirror.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, docmirror.EINTERNAL, docmirror.ErrorCode(err))
	assert.Equal(t, "Internal error.", docmirror.ErrorMessage(err))
}
