package toll

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2013-02-07 is an ordinary Thursday under the reference calendar.
var weekday = date(2013, time.February, 7)

func at(day time.Time, clock string) time.Time {
	ct := MustParseClockTime(clock)
	return time.Date(day.Year(), day.Month(), day.Day(), ct.Hour(), ct.Minute(), 0, 0, time.UTC)
}

func newReferenceCalculator() *Calculator {
	return NewCalculator(NewGothenburgTariff(), NewSwedishCalendar(), NewCategoryExemptionPolicy())
}

func car() Vehicle {
	return Vehicle{RegistrationNumber: "ABC123", Category: CategoryCar}
}

// flatTariff charges the same fee at every time of day.
type flatTariff struct {
	fee      int
	dailyCap int
}

func (t flatTariff) FeeAt(ClockTime) int { return t.fee }
func (t flatTariff) DailyCap() int       { return t.dailyCap }

func TestCalculator_SinglePassageRushHour(t *testing.T) {
	calc := newReferenceCalculator()

	fee, err := calc.TotalFee(car(), []time.Time{at(weekday, "07:30")})
	require.NoError(t, err)
	assert.Equal(t, 18, fee)
}

func TestCalculator_PassagesInSeparateWindowsChargeSeparately(t *testing.T) {
	calc := NewCalculator(flatTariff{fee: 18, dailyCap: 100}, NewSwedishCalendar(), NewCategoryExemptionPolicy())

	fee, err := calc.TotalFee(car(), []time.Time{at(weekday, "06:45"), at(weekday, "07:45")})
	require.NoError(t, err)
	assert.Equal(t, 36, fee, "passages 60 minutes apart form two charge groups")
}

func TestCalculator_GroupChargesPeakFee(t *testing.T) {
	calc := newReferenceCalculator()

	// 15:15 prices at 13, 15:45 at 18; one group pays the maximum, not the sum.
	fee, err := calc.TotalFee(car(), []time.Time{at(weekday, "15:15"), at(weekday, "15:45")})
	require.NoError(t, err)
	assert.Equal(t, 18, fee)
}

func TestCalculator_ExactWindowBoundaryIsExclusive(t *testing.T) {
	calc := NewCalculator(flatTariff{fee: 10, dailyCap: 100}, NewSwedishCalendar(), NewCategoryExemptionPolicy())

	// 08:59 is within the 08:00 anchor's window, 09:00 exactly is not.
	inside, err := calc.Assess(car(), []time.Time{
		at(weekday, "08:00"),
		at(weekday, "08:59"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inside.ChargeGroups)
	assert.Equal(t, 10, inside.TotalFee)

	outside, err := calc.Assess(car(), []time.Time{
		at(weekday, "08:00"),
		at(weekday, "09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, outside.ChargeGroups)
	assert.Equal(t, 20, outside.TotalFee)
}

func TestCalculator_GroupingReanchorsAtNewGroup(t *testing.T) {
	calc := NewCalculator(flatTariff{fee: 10, dailyCap: 100}, NewSwedishCalendar(), NewCategoryExemptionPolicy())

	// 08:00 and 08:50 share a group; 09:10 starts a new group anchored at
	// itself, and 09:40 joins that group even though it is more than an hour
	// after the first passage of the day.
	result, err := calc.Assess(car(), []time.Time{
		at(weekday, "08:00"),
		at(weekday, "08:50"),
		at(weekday, "09:10"),
		at(weekday, "09:40"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ChargeGroups)
	assert.Equal(t, 20, result.TotalFee)
}

func TestCalculator_WeekendIsFree(t *testing.T) {
	calc := newReferenceCalculator()
	saturday := date(2013, time.February, 9)

	fee, err := calc.TotalFee(car(), []time.Time{at(saturday, "07:30")})
	require.NoError(t, err)
	assert.Equal(t, 0, fee)
}

func TestCalculator_RecurringHolidayIsFree(t *testing.T) {
	calc := newReferenceCalculator()
	mayDay := date(2013, time.May, 1)

	fee, err := calc.TotalFee(car(), []time.Time{at(mayDay, "07:30")})
	require.NoError(t, err)
	assert.Equal(t, 0, fee)
}

func TestCalculator_ExemptVehicleIsFree(t *testing.T) {
	calc := newReferenceCalculator()
	motorbike := Vehicle{RegistrationNumber: "MCB001", Category: CategoryMotorbike}

	result, err := calc.Assess(motorbike, []time.Time{
		at(weekday, "07:30"),
		at(weekday, "16:00"),
	})
	require.NoError(t, err)
	assert.True(t, result.VehicleExempt)
	assert.Equal(t, 0, result.TotalFee)
}

func TestCalculator_TotalClampedToDailyCap(t *testing.T) {
	calc := NewCalculator(flatTariff{fee: 30, dailyCap: 50}, NewSwedishCalendar(), NewCategoryExemptionPolicy())

	// Two passages more than an hour apart would charge 60 unclamped.
	fee, err := calc.TotalFee(car(), []time.Time{at(weekday, "07:00"), at(weekday, "09:30")})
	require.NoError(t, err)
	assert.Equal(t, 50, fee)
}

func TestCalculator_CapInvariantOnBusyDay(t *testing.T) {
	calc := newReferenceCalculator()

	var passages []time.Time
	for hour := 6; hour <= 18; hour++ {
		passages = append(passages, time.Date(2013, time.February, 7, hour, 5, 0, 0, time.UTC))
	}

	fee, err := calc.TotalFee(car(), passages)
	require.NoError(t, err)
	assert.Equal(t, 60, fee)
}

func TestCalculator_OrderInvariance(t *testing.T) {
	calc := newReferenceCalculator()

	passages := []time.Time{
		at(weekday, "06:15"),
		at(weekday, "07:05"),
		at(weekday, "08:40"),
		at(weekday, "15:20"),
		at(weekday, "16:10"),
		at(weekday, "17:55"),
	}

	expected, err := calc.TotalFee(car(), passages)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]time.Time(nil), passages...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		fee, err := calc.TotalFee(car(), shuffled)
		require.NoError(t, err)
		assert.Equal(t, expected, fee)
	}
}

func TestCalculator_DuplicatePassagesShareAGroup(t *testing.T) {
	calc := newReferenceCalculator()
	passage := at(weekday, "07:30")

	fee, err := calc.TotalFee(car(), []time.Time{passage, passage})
	require.NoError(t, err)
	assert.Equal(t, 18, fee)
}

func TestCalculator_GroupStraddlingMidnightIntoTollFreeDay(t *testing.T) {
	calc := NewCalculator(flatTariff{fee: 10, dailyCap: 100}, NewSwedishCalendar(), NewCategoryExemptionPolicy())

	// Friday 23:30 and Saturday 00:10 group together; only the Friday
	// passage is chargeable.
	friday := date(2013, time.February, 8)
	saturday := date(2013, time.February, 9)
	fee, err := calc.TotalFee(car(), []time.Time{at(friday, "23:30"), at(saturday, "00:10")})
	require.NoError(t, err)
	assert.Equal(t, 10, fee)
}

func TestCalculator_EmptyPassagesRejected(t *testing.T) {
	calc := newReferenceCalculator()

	_, err := calc.TotalFee(car(), nil)
	assert.ErrorIs(t, err, ErrNoPassages)
}

func TestCalculator_UnknownCategoryRejected(t *testing.T) {
	calc := newReferenceCalculator()
	unknown := Vehicle{RegistrationNumber: "XYZ999", Category: Category("hovercraft")}

	_, err := calc.TotalFee(unknown, []time.Time{at(weekday, "07:30")})
	assert.ErrorIs(t, err, ErrUnknownVehicle)
}
