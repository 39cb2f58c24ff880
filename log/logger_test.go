// SPDX-License-Identifier: ice License 1.0

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWith(t *testing.T) {
	t.Parallel()
	parent := With("method", "GET")
	child := parent.With("path", "/v1/users")
	assert.Equal(t, []any{"method", "GET"}, parent.Fields())
	assert.Equal(t, []any{"method", "GET", "path", "/v1/users"}, child.Fields())
	assert.Equal(t, []any{"method", "GET", "path", "/v1/users", "status", 404}, child.merge([]any{"status", 404}))
	assert.Equal(t, []any{"a", 1}, Default().merge([]any{"a", 1}))
}

func TestLoggerFieldsAreCopied(t *testing.T) {
	t.Parallel()
	l := With("a", 1)
	fields := l.Fields()
	fields[1] = 2
	assert.Equal(t, []any{"a", 1}, l.Fields())
}
