// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"context"

	"github.com/goccy/go-json"
)

func NewEvent(name string, properties Properties) *Event {
	return &Event{Name: name, Properties: properties}
}

func (e *Event) MarshalJSON() ([]byte, error) {
	props := e.Properties
	if props == nil {
		props = make(Properties)
	}

	return json.Marshal(&eventPayload{Event: e.Name, Properties: props}) //nolint:wrapcheck // We're just proxying it.
}

func (*Event) UnmarshalJSON(context.Context, []byte) error {
	return ErrWriteOnly
}
