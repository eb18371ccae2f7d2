package toll

import "fmt"

// TariffPolicy prices a single passage by its time of day and bounds the
// total chargeable per day.
type TariffPolicy interface {
	// FeeAt returns the fee for a passage at the given time of day. A time
	// outside every configured interval is free and returns 0.
	FeeAt(at ClockTime) int

	// DailyCap returns the maximum total fee chargeable in one day.
	DailyCap() int
}

// FeeInterval is one chargeable window of the day. Start is inclusive, End
// exclusive. Intervals in a tariff must not overlap.
type FeeInterval struct {
	Start ClockTime
	End   ClockTime
	Fee   int
}

// IntervalTariff is a TariffPolicy backed by an ordered list of fee
// intervals. It is immutable after construction and safe for concurrent use.
type IntervalTariff struct {
	intervals []FeeInterval
	dailyCap  int
}

// NewIntervalTariff creates an IntervalTariff from the given intervals and
// daily cap. Intervals are scanned in declaration order.
func NewIntervalTariff(intervals []FeeInterval, dailyCap int) (*IntervalTariff, error) {
	if dailyCap < 0 {
		return nil, fmt.Errorf("daily cap must be non-negative, got %d", dailyCap)
	}
	for _, iv := range intervals {
		if iv.Start >= iv.End {
			return nil, fmt.Errorf("interval %s-%s: start must precede end", iv.Start, iv.End)
		}
		if iv.Fee < 0 {
			return nil, fmt.Errorf("interval %s-%s: fee must be non-negative, got %d", iv.Start, iv.End, iv.Fee)
		}
	}
	return &IntervalTariff{
		intervals: append([]FeeInterval(nil), intervals...),
		dailyCap:  dailyCap,
	}, nil
}

// FeeAt returns the fee of the first interval containing the given time of
// day, or 0 when no interval matches.
func (t *IntervalTariff) FeeAt(at ClockTime) int {
	for _, iv := range t.intervals {
		if at >= iv.Start && at < iv.End {
			return iv.Fee
		}
	}
	return 0
}

// DailyCap returns the maximum total fee chargeable in one day.
func (t *IntervalTariff) DailyCap() int {
	return t.dailyCap
}

// Reference congestion tariff (Gothenburg scheme), fees in whole SEK.
const (
	lowFee    = 8
	mediumFee = 13
	highFee   = 18

	defaultDailyCap = 60
)

// NewGothenburgTariff returns the built-in reference tariff: rush-hour peaks
// morning and afternoon, free nights, daily cap of 60.
func NewGothenburgTariff() *IntervalTariff {
	tariff, err := NewIntervalTariff([]FeeInterval{
		{MustParseClockTime("06:00"), MustParseClockTime("06:30"), lowFee},
		{MustParseClockTime("06:30"), MustParseClockTime("07:00"), mediumFee},
		{MustParseClockTime("07:00"), MustParseClockTime("08:00"), highFee},
		{MustParseClockTime("08:00"), MustParseClockTime("08:30"), mediumFee},
		{MustParseClockTime("08:30"), MustParseClockTime("15:00"), lowFee},
		{MustParseClockTime("15:00"), MustParseClockTime("15:30"), mediumFee},
		{MustParseClockTime("15:30"), MustParseClockTime("17:00"), highFee},
		{MustParseClockTime("17:00"), MustParseClockTime("18:00"), mediumFee},
		{MustParseClockTime("18:00"), MustParseClockTime("18:30"), lowFee},
	}, defaultDailyCap)
	if err != nil {
		panic(err)
	}
	return tariff
}
