package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:30", 390, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"7:00", 0, true},  // single-digit hour
		{"07:0", 0, true},  // single-digit minute
		{"0700", 0, true},  // missing colon
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			minutes, err := ParseClock(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, minutes)
		})
	}
}

func TestShiftMinutes(t *testing.T) {
	assert.Equal(t, 480, shiftMinutes(480, 960), "08:00-16:00")
	assert.Equal(t, 540, shiftMinutes(1320, 420), "22:00-07:00 wraps midnight")
	assert.Equal(t, 1440, shiftMinutes(0, 0), "00:00-00:00 is a full day")
	assert.Equal(t, 1380, shiftMinutes(60, 0), "01:00-00:00 wraps to 23h")
}

func TestNightMinutes(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"day shift", "08:00", "16:00", 0},
		{"classic night shift", "22:00", "07:00", 420},
		{"late start", "23:30", "07:00", 390},
		{"full 24h shift", "00:00", "00:00", 420},
		{"early morning only", "04:00", "08:00", 120},
		{"ends at window start", "20:00", "23:00", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := ParseClock(tc.start)
			require.NoError(t, err)
			end, err := ParseClock(tc.end)
			require.NoError(t, err)

			total := shiftMinutes(start, end)
			got := nightMinutes(start, total)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, got, 420, "no shift can accrue more than 7 night hours")
		})
	}
}
