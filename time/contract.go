// SPDX-License-Identifier: ice License 1.0

package time

import (
	stdlibtime "time"

	"github.com/goccy/go-json"
)

// Public API.

type (
	// Time is rendered as integer milliseconds since the Unix epoch, UTC.
	Time struct {
		*stdlibtime.Time
	}
)

// Private API.

var (
	_ json.Marshaler = (*Time)(nil)
)
