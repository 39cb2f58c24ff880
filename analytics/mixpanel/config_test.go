// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testApplicationYAMLKey = "self"
)

func TestNewUnconfigured(t *testing.T) { //nolint:paralleltest // Env vars are process wide.
	t.Setenv("ANALYTICS_MIXPANEL_PROJECT_ID", "")
	t.Setenv("SELF_ANALYTICS_MIXPANEL_PROJECT_ID", "")
	app := New(testApplicationYAMLKey)
	assert.Nil(t, app.Configuration())
	assert.Equal(t, defaultBaseURL, app.baseURL)
	assert.Equal(t, requestDeadline, app.httpClient.GetClient().Timeout)
}

func TestNewFromEnv(t *testing.T) { //nolint:paralleltest // Env vars are process wide.
	t.Setenv("ANALYTICS_MIXPANEL_PROJECT_ID", "global")
	t.Setenv("SELF_ANALYTICS_MIXPANEL_PROJECT_ID", "4242")
	t.Setenv("ANALYTICS_MIXPANEL_USERNAME", "service-account")
	t.Setenv("ANALYTICS_MIXPANEL_PASSWORD", "secret")
	app := New(testApplicationYAMLKey)
	cfg := app.Configuration()
	require.NotNil(t, cfg)
	assert.Equal(t, &Configuration{
		ProjectID:   "4242",
		Credentials: Credentials{Username: "service-account", Password: "secret"},
	}, cfg)
}
