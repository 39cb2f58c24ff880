// SPDX-License-Identifier: ice License 1.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoadFromKey(t *testing.T) {
	t.Parallel()
	var cfg struct {
		Level string `yaml:"level" mapstructure:"level"`
	}
	MustLoadFromKey("logger", &cfg)
	assert.NotEmpty(t, cfg.Level)
}

func TestEnv(t *testing.T) { //nolint:paralleltest // Env vars are process wide.
	t.Setenv("ANALYTICS_MIXPANEL_PROJECT_ID", "global")
	assert.Equal(t, "global", Env("some-service/v2", "analytics_mixpanel_project_id"))
	t.Setenv("SOME_SERVICE_V2_ANALYTICS_MIXPANEL_PROJECT_ID", "scoped")
	assert.Equal(t, "scoped", Env("some-service/v2", "analytics_mixpanel_project_id"))
	assert.Equal(t, "global", Env("", "ANALYTICS_MIXPANEL_PROJECT_ID"))
	require.Empty(t, Env("some-service/v2", "ANALYTICS_MIXPANEL_MISSING"))
}
