// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"sync"

	"github.com/ua-parser/uap-go/uaparser"
)

//nolint:gochecknoglobals // Compiling the regexes is expensive, so it's done once, on first use.
var defaultUserAgentParser = sync.OnceValue(func() UserAgentParser {
	return &uapParser{parser: uaparser.NewFromSaved()}
})

// NewUserAgentParser returns the parser used by default, backed by the ua-parser regexes.
func NewUserAgentParser() UserAgentParser {
	return defaultUserAgentParser()
}

func (p *uapParser) Parse(userAgent string) *Agent {
	agent := new(Agent)
	if userAgent == "" {
		return agent
	}
	client := p.parser.Parse(userAgent)
	if client == nil {
		return agent
	}
	if client.UserAgent != nil {
		agent.Browser = knownFamily(client.UserAgent.Family)
	}
	if client.Os != nil {
		agent.OS = knownFamily(client.Os.Family)
	}
	if client.Device != nil {
		agent.DeviceVendor = client.Device.Brand
	}

	return agent
}

func knownFamily(family string) string {
	if family == unknownFamily {
		return ""
	}

	return family
}
