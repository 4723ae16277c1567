package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_invalid",
			code:    errors.ErrConfigInvalid,
			message: "home root does not exist",
			wantStr: "[CONFIG_INVALID] home root does not exist",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "empty category name",
			wantStr: "[INVALID_INPUT] empty category name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidInput, "category %q lists %d files", "vim", 3)
	assert.Equal(t, `category "vim" lists 3 files`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrSymlinkCreate, "failed to link .vimrc")

		assert.Equal(t, errors.ErrSymlinkCreate, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[SYMLINK_CREATE] failed to link .vimrc: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "unused"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "unused %d", 1))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrBackup, "backup failed").
		WithDetail("target", "/home/u/.vimrc").
		WithDetail("backup", "/home/u/.vimrc.backup")

	assert.Equal(t, "/home/u/.vimrc", err.Details["target"])
	assert.Equal(t, "/home/u/.vimrc.backup", err.Details["backup"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrFileAccess, "error 1")
	err2 := errors.New(errors.ErrFileAccess, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrConfigInvalid, "bad"),
			code:     errors.ErrConfigInvalid,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrConfigInvalid, "bad"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_by_fmt",
			err:      fmt.Errorf("install: %w", errors.New(errors.ErrSymlinkRemove, "denied")),
			code:     errors.ErrSymlinkRemove,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("plain"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	require.Equal(t, errors.ErrBackup, errors.GetErrorCode(errors.New(errors.ErrBackup, "x")))
	require.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("x")))
	require.Nil(t, errors.GetErrorDetails(stderrors.New("x")))
}
