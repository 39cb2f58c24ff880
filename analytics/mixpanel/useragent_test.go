// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgentParser(t *testing.T) {
	t.Parallel()
	parser := NewUserAgentParser()
	assert.Same(t, parser, NewUserAgentParser())

	//nolint:lll // User agents are long.
	iPhone := parser.Parse("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Equal(t, &Agent{Browser: "Mobile Safari", OS: "iOS", DeviceVendor: "Apple"}, iPhone)

	//nolint:lll // User agents are long.
	chrome := parser.Parse("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Equal(t, "Chrome", chrome.Browser)
	assert.Equal(t, "Windows", chrome.OS)

	assert.Equal(t, new(Agent), parser.Parse("definitely not a browser"))
	assert.Equal(t, new(Agent), parser.Parse(""))
}

func TestDerivedPropertiesFromUnparseableUserAgent(t *testing.T) {
	t.Parallel()
	derived := derivedProperties(&requestSnapshot{userAgent: "definitely not a browser"}, NewUserAgentParser())
	assert.NotContains(t, derived, PropertyBrowser)
	assert.NotContains(t, derived, PropertyDevice)
	assert.NotContains(t, derived, PropertyOS)
	assert.Empty(t, derived)
}
