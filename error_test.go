package terreno_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/terreno"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := terreno.Errorf(terreno.EINDEX, "index %q unreachable", "https://example.com")

	assert.Equal(t, terreno.EINDEX, terreno.ErrorCode(err))
	assert.Equal(t, "index \"https://example.com\" unreachable", terreno.ErrorMessage(err))
	assert.Equal(t, "terreno error: code=index message=index \"https://example.com\" unreachable", err.Error())
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("region page: %w", terreno.Errorf(terreno.EFETCH, "HTTP 503"))

	assert.Equal(t, terreno.EFETCH, terreno.ErrorCode(err))
	assert.Equal(t, "HTTP 503", terreno.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, terreno.EINTERNAL, terreno.ErrorCode(err))
	assert.Equal(t, "Internal error.", terreno.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, terreno.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, terreno.ErrorMessage(nil))
}
