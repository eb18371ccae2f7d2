package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"github.com/spf13/viper"
)

// tariffFile is the on-disk shape of a tariff definition.
type tariffFile struct {
	DailyCap  int `mapstructure:"daily_cap"`
	Intervals []struct {
		Start string `mapstructure:"start"`
		End   string `mapstructure:"end"`
		Fee   int    `mapstructure:"fee"`
	} `mapstructure:"intervals"`
	Calendar struct {
		TollFreeMonth int      `mapstructure:"toll_free_month"`
		Recurring     []string `mapstructure:"recurring_holidays"` // "MM-DD"
		Dates         []string `mapstructure:"holiday_dates"`      // "YYYY-MM-DD"
	} `mapstructure:"calendar"`
}

// LoadTariff reads a tariff file (YAML, JSON or TOML, by extension) and
// builds the tariff and calendar policies it defines.
func LoadTariff(path string) (*toll.IntervalTariff, *toll.HolidayCalendar, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("failed to read tariff file: %w", err)
	}

	var file tariffFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse tariff file: %w", err)
	}

	intervals := make([]toll.FeeInterval, 0, len(file.Intervals))
	for _, iv := range file.Intervals {
		start, err := toll.ParseClockTime(iv.Start)
		if err != nil {
			return nil, nil, err
		}
		end, err := toll.ParseClockTime(iv.End)
		if err != nil {
			return nil, nil, err
		}
		intervals = append(intervals, toll.FeeInterval{Start: start, End: end, Fee: iv.Fee})
	}

	tariff, err := toll.NewIntervalTariff(intervals, file.DailyCap)
	if err != nil {
		return nil, nil, err
	}

	recurring := make([]toll.MonthDay, 0, len(file.Calendar.Recurring))
	for _, s := range file.Calendar.Recurring {
		md, err := parseMonthDay(s)
		if err != nil {
			return nil, nil, err
		}
		recurring = append(recurring, md)
	}

	dated := make([]time.Time, 0, len(file.Calendar.Dates))
	for _, s := range file.Calendar.Dates {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid holiday date %q: %w", s, err)
		}
		dated = append(dated, d)
	}

	month := time.Month(file.Calendar.TollFreeMonth)
	if month < time.January || month > time.December {
		return nil, nil, fmt.Errorf("invalid toll-free month: %d", file.Calendar.TollFreeMonth)
	}

	return tariff, toll.NewHolidayCalendar(month, recurring, dated), nil
}

func parseMonthDay(s string) (toll.MonthDay, error) {
	mm, dd, ok := strings.Cut(s, "-")
	if !ok {
		return toll.MonthDay{}, fmt.Errorf("invalid recurring holiday %q: want MM-DD", s)
	}
	month, err := strconv.Atoi(mm)
	if err != nil {
		return toll.MonthDay{}, fmt.Errorf("invalid recurring holiday %q: %w", s, err)
	}
	day, err := strconv.Atoi(dd)
	if err != nil {
		return toll.MonthDay{}, fmt.Errorf("invalid recurring holiday %q: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return toll.MonthDay{}, fmt.Errorf("invalid recurring holiday %q: out of range", s)
	}
	return toll.MonthDay{Month: time.Month(month), Day: day}, nil
}
