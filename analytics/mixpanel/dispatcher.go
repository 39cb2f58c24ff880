// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/mixpanel/terror"
)

//nolint:gochecknoglobals // Shared by applications built without New.
var defaultHTTPClient = sync.OnceValue(func() *req.Client {
	return newHTTPClient(0)
})

func newHTTPClient(timeout stdlibtime.Duration) *req.Client {
	if timeout <= 0 {
		timeout = requestDeadline
	}

	return req.C().
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetTimeout(timeout)
}

func (d *dispatcher) importURL() string {
	return d.baseURL + importPath + "?strict=1&project_id=" + url.QueryEscape(d.cfg.ProjectID)
}

// send posts all events in one request. Events are sent as a JSON array, even if there's only one.
func (d *dispatcher) send(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	body, err := json.Marshal(events)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %v events", len(events))
	}
	importURL := d.importURL()
	resp, err := d.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(d.cfg.Credentials.Username, d.cfg.Credentials.Password).
		SetContentType("application/json").
		SetHeader("Accept", "application/json").
		SetBodyBytes(body).
		Post(importURL)
	if err != nil {
		return errors.Wrapf(err, "mixpanel post `%v` failed, events: %v", importURL, len(events))
	}
	if statusCode := resp.GetStatusCode(); statusCode >= http.StatusBadRequest {
		respBody, rErr := resp.ToString()
		if rErr != nil {
			respBody = errors.Wrap(rErr, "unable to read response body").Error()
		}

		return terror.New(errors.Wrapf(ErrRemoteRejection, "mixpanel post `%v` failed with status %v", importURL, statusCode), map[string]any{
			"statusCode": statusCode,
			"status":     resp.GetStatus(),
			"headers":    resp.Header,
			"response":   respBody,
			"events":     len(events),
		})
	}

	return nil
}
