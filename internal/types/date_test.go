package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateOnlyTruncatesToUTCDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 in New York is already the next day in UTC.
	d := NewDateOnly(time.Date(2026, 9, 10, 23, 30, 0, 0, loc))

	assert.Equal(t, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "2026-09-11", d.String())
}

func TestParseDateOnly(t *testing.T) {
	d, err := ParseDateOnly("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), d.Time())

	for _, bad := range []string{"10-09-2026", "2026/09/10", "2026-9-1", "not a date", ""} {
		_, err := ParseDateOnly(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDateOnlyJSONRoundTrip(t *testing.T) {
	type payload struct {
		Date DateOnly `json:"date"`
	}

	out, err := json.Marshal(payload{Date: NewDateOnly(time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-09-10"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-09-10"}`), &in))
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), in.Date.Time())
}

func TestDateOnlyUnmarshalNullAndEmpty(t *testing.T) {
	var d DateOnly
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"09/10/2026"`), &d))
}

func TestDateOnlyBefore(t *testing.T) {
	a, _ := ParseDateOnly("2026-09-10")
	b, _ := ParseDateOnly("2026-09-11")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}
