// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"strings"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/mixpanel/time"
)

func defaultProperties() Properties {
	return Properties{
		PropertyTime:       Int(time.Now().Millis()),
		PropertyInsertID:   String(uuid.NewString()),
		PropertyDistinctID: String(""),
	}
}

func addDefaults(properties Properties) (Properties, error) {
	return layer(defaultProperties(), properties)
}

// enrich layers derived under properties, so the caller's values win. Without derived properties it's the identity.
func enrich(properties, derived Properties) (Properties, error) {
	if len(derived) == 0 {
		return properties, nil
	}

	return layer(derived, properties)
}

// prepareProperties results in the defaults, overridden by the derived properties, overridden by the caller's.
func prepareProperties(derived, properties Properties) (Properties, error) {
	enriched, err := enrich(properties, derived)
	if err != nil {
		return nil, err
	}

	return addDefaults(enriched)
}

func derivedProperties(request RequestContext, parser UserAgentParser) Properties {
	derived := make(Properties, 1+1+1+1)
	if request == nil {
		return derived
	}
	if ip := request.PeerIP(); ip != nil {
		derived[PropertyIP] = String(ip.String())
	}
	userAgent := strings.TrimSpace(request.UserAgent())
	if userAgent == "" || parser == nil {
		return derived
	}
	agent := parser.Parse(userAgent)
	if agent == nil {
		return derived
	}
	setIfKnown(derived, PropertyBrowser, agent.Browser)
	setIfKnown(derived, PropertyDevice, agent.DeviceVendor)
	setIfKnown(derived, PropertyOS, agent.OS)

	return derived
}

func setIfKnown(properties Properties, key, val string) {
	if val != "" {
		properties[key] = String(val)
	}
}

func layer(layers ...Properties) (Properties, error) {
	size := 0
	for _, l := range layers {
		size += len(l)
	}
	merged := make(Properties, size)
	for ix, l := range layers {
		if err := mergo.Merge(&merged, l, mergo.WithOverride); err != nil {
			return nil, errors.Wrapf(err, "failed to merge properties layer %v", ix)
		}
	}

	return merged, nil
}
