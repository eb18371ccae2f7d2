package toll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHolidayCalendar_IsTollFreeDay(t *testing.T) {
	cal := NewSwedishCalendar()

	tests := []struct {
		name     string
		date     time.Time
		tollFree bool
	}{
		{"ordinary weekday", date(2013, time.February, 7), false},
		{"saturday", date(2013, time.February, 9), true},
		{"sunday", date(2013, time.February, 10), true},
		{"any day in july", date(2013, time.July, 17), true},
		{"recurring holiday in supported year", date(2013, time.May, 1), true},
		{"recurring holiday in another year", date(2019, time.December, 25), true},
		{"new year's eve any year", date(2021, time.December, 31), true},
		{"good friday 2013", date(2013, time.March, 29), true},
		{"easter monday 2013", date(2013, time.April, 1), true},
		{"all saints' eve 2013", date(2013, time.November, 1), true},
		{"day after a dated holiday", date(2013, time.November, 4), false},
		{"unpopulated year, movable feast date", date(2014, time.April, 18), false},
		{"unpopulated year, weekend still applies", date(2014, time.April, 19), true},
		{"unpopulated year, recurring still applies", date(2014, time.June, 6), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tollFree, cal.IsTollFreeDay(tt.date))
		})
	}
}

func TestHolidayCalendar_DatedHolidayMatchesExactYearOnly(t *testing.T) {
	cal := NewHolidayCalendar(time.July, nil, []time.Time{date(2013, time.March, 28)})

	assert.True(t, cal.IsTollFreeDay(date(2013, time.March, 28)))
	// Same month/day in 2019 is a Thursday, so only the dated tier could match.
	assert.False(t, cal.IsTollFreeDay(date(2019, time.March, 28)))
}

func TestHolidayCalendar_RecurringHolidayIgnoresYear(t *testing.T) {
	cal := NewHolidayCalendar(time.July, []MonthDay{{time.May, 1}}, nil)

	for _, year := range []int{2000, 2013, 2024} {
		assert.True(t, cal.IsTollFreeDay(date(year, time.May, 1)), "year %d", year)
	}
	assert.False(t, cal.IsTollFreeDay(date(2013, time.May, 2)))
}
