package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"09:00", "09:00:00", true},
		{"09:05:30", "09:05:30", true},
		{"00:00", "00:00:00", true},
		{"23:59:59", "23:59:59", true},
		{"9:00", "", false},
		{"24:00", "", false},
		{"12:60", "", false},
		{"12:30:60", "", false},
		{"12-30", "", false},
		{"ab:cd", "", false},
		{"", "", false},
		{"12:30:1", "", false},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.input)
		if !c.ok {
			assert.ErrorIs(t, err, ErrInvalidFormat, c.input)
			assert.ErrorIs(t, err, apperror.ErrValidation, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got.String())
	}
}

func TestMinutesBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "17:30", 510},
		{"09:00", "09:00", 0},
		{"22:00", "06:00", 480},
		{"23:59", "00:01", 2},
		{"09:00:00", "09:00:30", 0.5},
	}
	for _, c := range cases {
		got := MinutesBetween(MustParseTimeOfDay(c.start), MustParseTimeOfDay(c.end))
		assert.InDelta(t, c.want, got, 1e-9, "%s -> %s", c.start, c.end)
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestIsAfter(t *testing.T) {
	start := MustParseTimeOfDay("09:00")

	assert.True(t, IsAfter(MustParseTimeOfDay("09:00:01"), start))
	assert.False(t, IsAfter(MustParseTimeOfDay("09:00:00"), start))
	assert.False(t, IsAfter(MustParseTimeOfDay("08:59:59"), start))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.33, Round2(1.3333))
	assert.Equal(t, 1.67, Round2(1.6666))
	assert.Equal(t, 480.0, Round2(480))
}

func TestTimeOfDay_JSON(t *testing.T) {
	var v struct {
		At TimeOfDay `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"08:15"}`), &v))
	assert.Equal(t, "08:15:00", v.At.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"08:15:00"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"at":"8:15"}`), &v))
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/03/2024")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	end, _ := ParseDate("2024-03-12")
	assert.Equal(t, 3, DaysInclusive(d, end))
	assert.Equal(t, 1, DaysInclusive(d, d))

	jakarta := time.FixedZone("WIB", 7*3600)
	late := time.Date(2024, 3, 10, 23, 30, 0, 0, jakarta)
	assert.Equal(t, d, DateOf(late))
	assert.Equal(t, "23:30:00", TimeOfDayOf(late).String())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	c := NewFixedClock(at)
	assert.Equal(t, at, c.Now())

	c.Set(at.Add(time.Hour))
	assert.Equal(t, at.Add(time.Hour), c.Now())
}
