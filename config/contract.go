// SPDX-License-Identifier: ice License 1.0

package config

// Private API.

const (
	applicationConfigFileName = "application.yaml"
	maxDotEnvDepth            = 5
)
