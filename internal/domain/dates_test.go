package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnlyDropsTimeOfDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 18, 45, 12, 500, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestDateOnlyKeepsLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	in := time.Date(2024, 3, 15, 22, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestDayBefore(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)},
		{"month boundary", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"year boundary", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DayBefore(tc.in))
		})
	}
}

func TestAstronautDutyIsRetirement(t *testing.T) {
	assert.True(t, (&AstronautDuty{DutyTitle: RetiredDutyTitle}).IsRetirement())
	assert.False(t, (&AstronautDuty{DutyTitle: "Retired"}).IsRetirement())
	assert.False(t, (&AstronautDuty{DutyTitle: "Pilot"}).IsRetirement())
}
