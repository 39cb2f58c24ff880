// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"net"
	"sync/atomic"
	"testing"
	stdlibtime "time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	stubParser struct {
		agent *Agent
		calls atomic.Int64
	}
)

func (p *stubParser) Parse(string) *Agent {
	p.calls.Add(1)

	return p.agent
}

func TestAddDefaults(t *testing.T) {
	t.Parallel()
	before := stdlibtime.Now().UnixMilli()
	props, err := addDefaults(Properties{})
	require.NoError(t, err)
	after := stdlibtime.Now().UnixMilli()

	require.Len(t, props, 3)
	millis, ok := props[PropertyTime].Interface().(int64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, after)
	insertID, ok := props[PropertyInsertID].Interface().(string)
	require.True(t, ok)
	parsed, err := uuid.Parse(insertID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.Equal(t, "", props[PropertyDistinctID].Interface())

	other, err := addDefaults(nil)
	require.NoError(t, err)
	assert.NotEqual(t, props[PropertyInsertID], other[PropertyInsertID])
}

func TestAddDefaultsCallerWins(t *testing.T) {
	t.Parallel()
	caller := Properties{
		PropertyTime:       Int(1),
		PropertyInsertID:   String("my-insert-id"),
		PropertyDistinctID: String("user-1"),
		"plan":             String("pro"),
		"empty":            Null(),
	}
	props, err := addDefaults(caller)
	require.NoError(t, err)
	assert.Equal(t, caller, props)
	assert.Len(t, caller, 5)
}

func TestPrepareCallerWinsOverEverything(t *testing.T) {
	t.Parallel()
	derived := Properties{PropertyIP: String("10.0.0.1"), PropertyBrowser: String("Chrome"), PropertyOS: String("Linux")}
	caller := Properties{PropertyIP: String("1.1.1.1"), PropertyDistinctID: String("user-1"), PropertyOS: Null()}
	props, err := prepareProperties(derived, caller)
	require.NoError(t, err)
	for k, v := range caller {
		assert.Equal(t, v, props[k], k)
	}
	assert.Equal(t, "Chrome", props[PropertyBrowser].Interface())
	assert.Contains(t, props, PropertyTime)
	assert.Contains(t, props, PropertyInsertID)
	assert.Len(t, props, 6)
}

func TestEnrichWithoutRequestData(t *testing.T) {
	t.Parallel()
	parser := &stubParser{agent: &Agent{Browser: "Chrome"}}
	props := Properties{"plan": String("pro")}

	enriched, err := enrich(props, derivedProperties(&requestSnapshot{}, parser))
	require.NoError(t, err)
	assert.Equal(t, props, enriched)
	assert.Zero(t, parser.calls.Load())

	enriched, err = enrich(props, derivedProperties(nil, parser))
	require.NoError(t, err)
	assert.Equal(t, props, enriched)
}

func TestEnrichKeepsCallerIP(t *testing.T) {
	t.Parallel()
	request := &requestSnapshot{peerIP: net.ParseIP("10.0.0.1")}
	enriched, err := enrich(Properties{PropertyIP: String("1.1.1.1")}, derivedProperties(request, nil))
	require.NoError(t, err)
	assert.Equal(t, Properties{PropertyIP: String("1.1.1.1")}, enriched)

	enriched, err = enrich(Properties{}, derivedProperties(request, nil))
	require.NoError(t, err)
	assert.Equal(t, Properties{PropertyIP: String("10.0.0.1")}, enriched)
}

func TestDerivedProperties(t *testing.T) {
	t.Parallel()
	request := &requestSnapshot{peerIP: net.ParseIP("2001:db8::1"), userAgent: "bogus/1.0"}

	parser := &stubParser{agent: &Agent{Browser: "Firefox", OS: "Ubuntu", DeviceVendor: "Lenovo"}}
	assert.Equal(t, Properties{
		PropertyIP:      String("2001:db8::1"),
		PropertyBrowser: String("Firefox"),
		PropertyOS:      String("Ubuntu"),
		PropertyDevice:  String("Lenovo"),
	}, derivedProperties(request, parser))

	parser = &stubParser{agent: &Agent{OS: "Ubuntu"}}
	assert.Equal(t, Properties{PropertyIP: String("2001:db8::1"), PropertyOS: String("Ubuntu")}, derivedProperties(request, parser))

	parser = &stubParser{}
	assert.Equal(t, Properties{PropertyIP: String("2001:db8::1")}, derivedProperties(request, parser))

	parser = &stubParser{agent: &Agent{Browser: "Firefox"}}
	assert.Empty(t, derivedProperties(&requestSnapshot{userAgent: "   "}, parser))
	assert.Zero(t, parser.calls.Load())
}
