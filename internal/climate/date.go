package climate

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCentury is the century added to two-digit years until a 1999 is seen.
const DefaultCentury = 1900

const leapDay = "02/29"

// Date is a normalized observation date. Month and Day are always two digits.
type Date struct {
	Year  int
	Month string
	Day   string
}

// MonthDay returns the calendar key "MM/DD".
func (d Date) MonthDay() string {
	return d.Month + "/" + d.Day
}

func (d Date) String() string {
	return d.Month + "/" + d.Day + "/" + strconv.Itoa(d.Year)
}

// DateState carries the two-digit year expansion state from one row to the
// next. The zero value is not useful; use NewDateState.
type DateState struct {
	Century      int
	PreviousYear int
}

// NewDateState returns the state for the start of an input file. A century of
// zero selects DefaultCentury. PreviousYear starts at the century so that a
// file opening with two-digit years has them expanded.
func NewDateState(century int) DateState {
	if century == 0 {
		century = DefaultCentury
	}
	return DateState{
		Century:      century,
		PreviousYear: century,
	}
}

// Normalize parses an ISO (YYYY-MM-DD) or US (M/D/YY or M/D/YYYY) date.
// The state is only updated when the date parses.
func (s *DateState) Normalize(raw string) (Date, error) {
	var yearStr, monthStr, dayStr string
	var usFormat bool

	switch {
	case strings.Contains(raw, "-"):
		parts := strings.Split(raw, "-")
		if len(parts) != 3 {
			return Date{}, fmt.Errorf("%w: date %q is not YEAR-MONTH-DAY", ErrParse, raw)
		}
		yearStr, monthStr, dayStr = parts[0], parts[1], parts[2]
	case strings.Contains(raw, "/"):
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return Date{}, fmt.Errorf("%w: date %q is not MONTH/DAY/YEAR", ErrParse, raw)
		}
		monthStr, dayStr, yearStr = parts[0], parts[1], parts[2]
		usFormat = true
	default:
		return Date{}, fmt.Errorf("%w: date %q has no '-' or '/' separator", ErrParse, raw)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 0 {
		return Date{}, fmt.Errorf("%w: invalid year %q in date %q", ErrParse, yearStr, raw)
	}
	month, err := parseDatePart(monthStr, 12)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid month %q in date %q", ErrParse, monthStr, raw)
	}
	day, err := parseDatePart(dayStr, 31)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid day %q in date %q", ErrParse, dayStr, raw)
	}

	if usFormat {
		if year < 100 && year < s.PreviousYear {
			year += s.Century
		}
		if year == 1999 {
			s.Century = 2000
		}
	}
	s.PreviousYear = year

	return Date{
		Year:  year,
		Month: fmt.Sprintf("%02d", month),
		Day:   fmt.Sprintf("%02d", day),
	}, nil
}

func parseDatePart(s string, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("%d out of range 1-%d", n, max)
	}
	return n, nil
}
