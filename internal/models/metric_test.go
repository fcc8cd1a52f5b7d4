package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMarshalsUndefinedAsNull(t *testing.T) {
	out, err := json.Marshal(UndefinedMetric())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestMetricMarshalsValue(t *testing.T) {
	out, err := json.Marshal(DefinedMetric(6.5))
	require.NoError(t, err)
	assert.Equal(t, "6.5", string(out))
}

func TestMetricUnmarshalRoundTrip(t *testing.T) {
	var m Metric
	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.False(t, m.Valid)

	require.NoError(t, json.Unmarshal([]byte("42"), &m))
	assert.True(t, m.Valid)
	assert.Equal(t, 42.0, m.Value)
}

func TestUndefinedIsDistinctFromZero(t *testing.T) {
	assert.NotEqual(t, DefinedMetric(0), UndefinedMetric())
}
