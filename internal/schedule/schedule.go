// Package schedule computes per-day availability for the artist's touring
// calendar: which city is operating on a given day, and whether the day is
// fully booked. The tables are hand-authored per month.
package schedule

import (
	"fmt"
	"time"
)

// DayRange is an inclusive [Start, End] span of day numbers within a month.
type DayRange struct {
	Start int
	End   int
}

// CityStay pairs a city with its day range. Stays within a month must not
// overlap; first match wins on lookup.
type CityStay struct {
	City  string
	Range DayRange
}

// Calendar holds the per-month city schedule and fully-booked day lists.
// Month keys are zero-based (0 = January).
type Calendar struct {
	citySchedule map[int][]CityStay
	fullyBooked  map[int][]int
}

// Day is one cell of the rendered calendar grid. Leading pad cells have
// CurrentMonth false and are never available.
type Day struct {
	DayNumber    int    `json:"day_number"`
	CurrentMonth bool   `json:"current_month"`
	Available    bool   `json:"available"`
	FullyBooked  bool   `json:"fully_booked"`
	City         string `json:"city,omitempty"`
}

// NewCalendar validates the tables at load time: day ranges must be ordered
// and city stays within a month must not overlap.
func NewCalendar(citySchedule map[int][]CityStay, fullyBooked map[int][]int) (*Calendar, error) {
	for month, stays := range citySchedule {
		if month < 0 || month > 11 {
			return nil, fmt.Errorf("invalid month index %d", month)
		}
		for i, stay := range stays {
			if stay.Range.Start < 1 || stay.Range.End < stay.Range.Start {
				return nil, fmt.Errorf("month %d: malformed range for %s", month, stay.City)
			}
			for _, other := range stays[:i] {
				if stay.Range.Start <= other.Range.End && other.Range.Start <= stay.Range.End {
					return nil, fmt.Errorf("month %d: %s overlaps %s", month, stay.City, other.City)
				}
			}
		}
	}
	return &Calendar{citySchedule: citySchedule, fullyBooked: fullyBooked}, nil
}

// CityForDay returns the city operating on the given zero-based month and
// day, or "" when no city is scheduled.
func (c *Calendar) CityForDay(month, day int) string {
	for _, stay := range c.citySchedule[month] {
		if day >= stay.Range.Start && day <= stay.Range.End {
			return stay.City
		}
	}
	return ""
}

// IsFullyBooked reports whether the day appears in the month's fully-booked
// list. Months with no entry are never fully booked.
func (c *Calendar) IsFullyBooked(month, day int) bool {
	for _, d := range c.fullyBooked[month] {
		if d == day {
			return true
		}
	}
	return false
}

// Available is true iff a city is assigned and the day is not fully booked.
func (c *Calendar) Available(month, day int) bool {
	return !c.IsFullyBooked(month, day) && c.CityForDay(month, day) != ""
}

// Generate renders the grid for a month: leading blank cells pad to the
// weekday of day 1 (Sunday first), then one cell per day of the month.
func (c *Calendar) Generate(year, month int) []Day {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())

	days := make([]Day, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		days = append(days, Day{})
	}
	for day := 1; day <= daysInMonth; day++ {
		city := c.CityForDay(month, day)
		fullyBooked := c.IsFullyBooked(month, day)
		days = append(days, Day{
			DayNumber:    day,
			CurrentMonth: true,
			Available:    !fullyBooked && city != "",
			FullyBooked:  fullyBooked,
			City:         city,
		})
	}
	return days
}

// DefaultCalendar is the hand-authored touring schedule: New York the first
// two weeks of each month, Los Angeles the next two, Las Vegas the tail.
func DefaultCalendar() *Calendar {
	tailEnd := func(end int) []CityStay {
		return []CityStay{
			{City: "New York", Range: DayRange{Start: 1, End: 14}},
			{City: "Los Angeles", Range: DayRange{Start: 15, End: 28}},
			{City: "Las Vegas", Range: DayRange{Start: 29, End: end}},
		}
	}
	citySchedule := map[int][]CityStay{
		8:  tailEnd(30),
		9:  tailEnd(31),
		10: tailEnd(30),
		11: tailEnd(31),
	}
	fullyBooked := map[int][]int{
		8:  {2, 6, 11, 17, 21, 24, 29},
		9:  {3, 7, 12, 18, 22, 25, 30},
		10: {2, 8, 15, 19, 24, 28},
		11: {5, 9, 16, 20, 26, 29},
	}

	cal, err := NewCalendar(citySchedule, fullyBooked)
	if err != nil {
		// the default tables are static; a failure here is a programming error
		panic(err)
	}
	return cal
}
