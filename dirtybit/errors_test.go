package dirtybit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"clearfatdirty/dirtybit"
)

func TestErrorWithMessage(t *testing.T) {
	err := dirtybit.ErrRead.WithMessage("sector size 8192")

	assert.Equal(t, "Reading drive data failed.: sector size 8192", err.Error())
	assert.ErrorIs(t, err, dirtybit.ErrRead)
	assert.NotErrorIs(t, err, dirtybit.ErrWrite)
}

func TestErrorWrap(t *testing.T) {
	original := errors.New("access is denied")
	err := dirtybit.ErrAccess.Wrap(original).WithMessage(`\\.\E:`)

	assert.Equal(t, `Unable to access the specified drive.: access is denied: \\.\E:`, err.Error())
	assert.ErrorIs(t, err, original)
	assert.ErrorIs(t, err, dirtybit.ErrAccess)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Unable to clear the dirty bit.", dirtybit.Message(dirtybit.ErrWrite.Wrap(errBoom)))
	assert.Equal(t, "Syntax error.", dirtybit.Message(dirtybit.ErrSyntax))
	assert.Equal(t, "boom", dirtybit.Message(errBoom))
}
