// SPDX-License-Identifier: ice License 1.0

package log

// Public API.

type (
	// Logger is a view over the global logger that attaches the same key/value fields to every entry.
	Logger struct {
		fields []any
	}
)

// Private API.

const (
	stackFramesToSkip = 2
)

type (
	cfg struct {
		Encoder string `yaml:"encoder"`
		Level   string `yaml:"level"`
	}
)
