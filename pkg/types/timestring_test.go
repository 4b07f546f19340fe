package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"09:00", false},
		{"00:00", false},
		{"23:59", false},
		{"9:00", true},
		{"24:00", true},
		{"12:60", true},
		{"12-30", true},
		{"", true},
		{"12:30:45", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:30")

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "11:15", shifted.String())

	// Ровно до конца дня — эксклюзивная граница 24:00
	endOfDay, err := TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "24:00", endOfDay.String())

	// Переход через полночь запрещен
	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-11)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("18:00").IsAfter(TimeString("09:30")))
}

func TestTimeString_OnDate(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, madrid)
	anchored, err := TimeString("10:30").OnDate(date, madrid)
	require.NoError(t, err)

	assert.Equal(t, 2026, anchored.Year())
	assert.Equal(t, time.March, anchored.Month())
	assert.Equal(t, 9, anchored.Day())
	assert.Equal(t, 10, anchored.Hour())
	assert.Equal(t, 30, anchored.Minute())
	assert.Equal(t, madrid, anchored.Location())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("18:45:59")))
	assert.Equal(t, "18:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	value, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", value)

	nilValue, err := TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, nilValue)

	_, err = TimeString("banana").Value()
	assert.Error(t, err)
}
