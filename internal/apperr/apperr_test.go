package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errInvalid = &Error{Message: "invalid value: %s"}

func TestFmt(t *testing.T) {
	err := errInvalid.Fmt("x")

	assert.Equal(t, "invalid value: x", err.Error())
	assert.ErrorIs(t, err, errInvalid)
	assert.Equal(t, "invalid value: %s", errInvalid.Message)
}

func TestWrap(t *testing.T) {
	base := &Error{Message: "saving failed"}

	err := base.Wrap(io.ErrUnexpectedEOF)

	assert.Equal(t, "saving failed: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestIsAcrossFmtAndWrap(t *testing.T) {
	err := errInvalid.Fmt("y").Wrap(io.EOF)

	assert.True(t, errors.Is(err, errInvalid))
	assert.True(t, errors.Is(err, io.EOF))
}
