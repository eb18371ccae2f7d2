package toll

import (
	"errors"
	"sort"
	"time"
)

// Passages within this window of a group's first passage are charged as one.
const chargeWindow = 60 * time.Minute

var (
	// ErrNoPassages is returned when a fee is requested for an empty
	// passage list.
	ErrNoPassages = errors.New("at least one passage is required")

	// ErrUnknownVehicle is returned when the vehicle category is not
	// recognized.
	ErrUnknownVehicle = errors.New("unknown vehicle category")
)

// Calculator computes the total toll fee for one vehicle and one day of
// passages. It holds no mutable state: all behavior comes from the injected
// policies, so a single Calculator is safe for concurrent use.
type Calculator struct {
	tariff    TariffPolicy
	calendar  CalendarPolicy
	exemption ExemptionPolicy
}

// NewCalculator creates a Calculator with the given policies.
func NewCalculator(tariff TariffPolicy, calendar CalendarPolicy, exemption ExemptionPolicy) *Calculator {
	return &Calculator{
		tariff:    tariff,
		calendar:  calendar,
		exemption: exemption,
	}
}

// Assessment is the result of charging one day of passages.
type Assessment struct {
	TotalFee      int
	ChargeGroups  int
	VehicleExempt bool
}

// TotalFee returns the total fee for the vehicle's passages on one day,
// clamped to the tariff's daily cap. The passage list may be unordered;
// it must not be empty.
func (c *Calculator) TotalFee(vehicle Vehicle, passages []time.Time) (int, error) {
	assessment, err := c.Assess(vehicle, passages)
	if err != nil {
		return 0, err
	}
	return assessment.TotalFee, nil
}

// Assess computes the total fee along with charging details.
//
// Passages are sorted and grouped greedily: the earliest remaining passage
// anchors a group, every passage strictly within 60 minutes of the anchor
// joins it, and the first passage at or beyond the window anchors the next
// group. Each group is charged once, at the highest per-passage fee observed
// in it. Group charges are summed and clamped to the daily cap.
func (c *Calculator) Assess(vehicle Vehicle, passages []time.Time) (Assessment, error) {
	if len(passages) == 0 {
		return Assessment{}, ErrNoPassages
	}
	if !vehicle.Category.IsValid() {
		return Assessment{}, ErrUnknownVehicle
	}

	if c.exemption.IsExempt(vehicle) {
		return Assessment{VehicleExempt: true}, nil
	}

	groups := groupByChargeWindow(passages)

	total := 0
	for _, group := range groups {
		total += c.maxFee(group)
	}
	if dailyCap := c.tariff.DailyCap(); total > dailyCap {
		total = dailyCap
	}

	return Assessment{TotalFee: total, ChargeGroups: len(groups)}, nil
}

// groupByChargeWindow splits sorted passages into charge groups. The window
// is re-anchored at each group's first passage, not recomputed per member.
func groupByChargeWindow(passages []time.Time) [][]time.Time {
	sorted := append([]time.Time(nil), passages...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var groups [][]time.Time
	anchor := sorted[0]
	current := []time.Time{sorted[0]}

	for _, p := range sorted[1:] {
		if p.Before(anchor.Add(chargeWindow)) {
			current = append(current, p)
			continue
		}
		groups = append(groups, current)
		anchor = p
		current = []time.Time{p}
	}
	return append(groups, current)
}

// maxFee returns the highest single-passage fee in the group. The toll-free
// date check is per passage: a group may straddle midnight into a toll-free
// day, in which case only the passages on the charged day count.
func (c *Calculator) maxFee(group []time.Time) int {
	max := 0
	for _, p := range group {
		if c.calendar.IsTollFreeDay(p) {
			continue
		}
		if fee := c.tariff.FeeAt(ClockTimeOf(p)); fee > max {
			max = fee
		}
	}
	return max
}
