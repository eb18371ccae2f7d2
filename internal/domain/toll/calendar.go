package toll

import "time"

// CalendarPolicy decides whether an entire calendar day is toll-free.
type CalendarPolicy interface {
	IsTollFreeDay(date time.Time) bool
}

// MonthDay identifies a recurring, year-independent calendar day.
type MonthDay struct {
	Month time.Month
	Day   int
}

type exactDate struct {
	year  int
	month time.Month
	day   int
}

// HolidayCalendar is a CalendarPolicy that treats weekends, one whole
// toll-free month and a configured holiday set as toll-free.
//
// Holidays come in two tiers: recurring holidays match by month and day in
// any year (fixed-date holidays such as Christmas), while dated holidays
// match one exact date (movable feasts such as Good Friday, listed per
// supported year). A query in a year with no dated holidays populated simply
// never matches that tier.
//
// The calendar is immutable after construction and safe for concurrent use.
type HolidayCalendar struct {
	tollFreeMonth time.Month
	recurring     map[MonthDay]struct{}
	dated         map[exactDate]struct{}
}

// NewHolidayCalendar creates a HolidayCalendar with the given toll-free
// month, recurring holidays and exact-date holidays.
func NewHolidayCalendar(tollFreeMonth time.Month, recurring []MonthDay, dated []time.Time) *HolidayCalendar {
	cal := &HolidayCalendar{
		tollFreeMonth: tollFreeMonth,
		recurring:     make(map[MonthDay]struct{}, len(recurring)),
		dated:         make(map[exactDate]struct{}, len(dated)),
	}
	for _, md := range recurring {
		cal.recurring[md] = struct{}{}
	}
	for _, d := range dated {
		cal.dated[exactDate{d.Year(), d.Month(), d.Day()}] = struct{}{}
	}
	return cal
}

// IsTollFreeDay reports whether the given date falls on a weekend, in the
// toll-free month, or on a configured holiday.
func (c *HolidayCalendar) IsTollFreeDay(date time.Time) bool {
	return isWeekend(date) || c.isTollFreeMonth(date) || c.isHoliday(date)
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (c *HolidayCalendar) isTollFreeMonth(date time.Time) bool {
	return date.Month() == c.tollFreeMonth
}

func (c *HolidayCalendar) isHoliday(date time.Time) bool {
	if _, ok := c.recurring[MonthDay{date.Month(), date.Day()}]; ok {
		return true
	}
	_, ok := c.dated[exactDate{date.Year(), date.Month(), date.Day()}]
	return ok
}

// NewSwedishCalendar returns the built-in reference calendar: weekends, all
// of July, the Swedish fixed-date holidays, and the movable 2013 feasts.
func NewSwedishCalendar() *HolidayCalendar {
	recurring := []MonthDay{
		{time.January, 1},   // New Year's Day
		{time.April, 30},    // Walpurgis Eve
		{time.May, 1},       // May Day
		{time.June, 6},      // National Day
		{time.December, 24}, // Christmas Eve
		{time.December, 25}, // Christmas Day
		{time.December, 26}, // Boxing Day
		{time.December, 31}, // New Year's Eve
	}
	dated := []time.Time{
		date(2013, time.March, 28), // Maundy Thursday
		date(2013, time.March, 29), // Good Friday
		date(2013, time.April, 1),  // Easter Monday
		date(2013, time.May, 8),
		date(2013, time.May, 9), // Ascension Day
		date(2013, time.June, 5),
		date(2013, time.June, 21), // Midsummer Eve
		date(2013, time.November, 1),
		// TODO: load movable feasts for years beyond 2013 from the tariff file.
	}
	return NewHolidayCalendar(time.July, recurring, dated)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
