// SPDX-License-Identifier: ice License 1.0

package terror

// Public API.

type (
	// Err is an error that carries structured data meant for logs or responses.
	Err struct {
		error
		Data map[string]any `json:"data"`
	}
)
