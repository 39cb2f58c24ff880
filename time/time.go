// SPDX-License-Identifier: ice License 1.0

package time

import (
	"strconv"
	stdlibtime "time"
)

func Now() *Time {
	now := stdlibtime.Now().UTC()

	return &Time{
		Time: &now,
	}
}

func New(time stdlibtime.Time) *Time {
	utc := time.UTC()

	return &Time{
		Time: &utc,
	}
}

func (t *Time) Millis() int64 {
	if t == nil || t.Time == nil {
		return 0
	}

	return t.UnixMilli()
}

func (t *Time) MarshalJSON() ([]byte, error) {
	if t == nil || t.Time == nil || t.IsZero() {
		return []byte("null"), nil
	}

	return strconv.AppendInt(nil, t.Millis(), 10), nil //nolint:mnd,gomnd // Decimal.
}
