// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func GIVEN(_ string, logic func()) {
	logic()
}

func WHEN(_ string, logic func()) {
	logic()
}

func THEN(logic func()) {
	logic()
}

func IT(_ string, logic func()) {
	logic()
}

func AND(_ string, logic func()) {
	logic()
}

// AssertMarshalling checks that val encodes to expectedMarshalling, ignoring whitespace.
func AssertMarshalling(tb testing.TB, val any, expectedMarshalling string) {
	tb.Helper()
	assert.JSONEq(tb, Compact(tb, expectedMarshalling), MustMarshal(tb, val))
}

// AssertWriteOnly checks that decoding any payload into OBJ fails with expected, both from a buffer and from a stream.
func AssertWriteOnly[OBJ any](tb testing.TB, expected error, payloads ...string) {
	tb.Helper()
	for _, payload := range append(payloads, "{}") {
		require.ErrorIs(tb, json.UnmarshalContext(context.Background(), []byte(payload), new(OBJ)), expected, payload)
		require.ErrorIs(tb, json.NewDecoder(strings.NewReader(payload)).DecodeContext(context.Background(), new(OBJ)), expected, payload)
	}
}

func Compact(tb testing.TB, val string) string {
	tb.Helper()
	buf := new(bytes.Buffer)
	require.NoError(tb, json.Compact(buf, []byte(val)))

	return buf.String()
}

func MustMarshal(tb testing.TB, val any) string {
	tb.Helper()
	valueBytes, err := json.MarshalContext(context.Background(), val)
	require.NoError(tb, err)

	return string(valueBytes)
}
