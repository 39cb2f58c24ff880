// SPDX-License-Identifier: ice License 1.0
//go:build zerolog

package log

import (
	stdlibErrors "errors"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackOf(t *testing.T) {
	t.Parallel()
	assert.Nil(t, stackOf(stdlibErrors.New("no stack")))

	stack, ok := stackOf(errors.New("with stack")).(string)
	require.True(t, ok)
	assert.Contains(t, stack, "zerlog_logger_test.go")
	assert.Contains(t, stack, "TestStackOf")
	assert.NotContains(t, stack, "<<")
}
