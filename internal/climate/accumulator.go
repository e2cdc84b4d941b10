// Package climate turns a multi-year daily weather history into per-calendar-day
// climate statistics.
package climate

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Observation is one accepted input row, filed under its calendar day.
type Observation struct {
	Year    int
	Precip  float64
	TempMin float64
	TempMax float64
}

// YearSeries holds every low and high temperature seen in one year.
type YearSeries struct {
	TempMin []float64
	TempMax []float64
}

// Options controls how rows are accumulated.
type Options struct {
	// Century is the initial century for two-digit years. Zero means 1900.
	Century int

	// IncludeLeapDayInYears lets Feb 29 rows count toward the yearly
	// extremes. They never enter the per-day statistics.
	IncludeLeapDayInYears bool
}

// Accumulator collects observations by calendar day and by year.
type Accumulator struct {
	opts     Options
	state    DateState
	days     map[string][]Observation
	years    map[int]*YearSeries
	lastDate string
	rows     int
	skipped  int
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator(opts Options) *Accumulator {
	return &Accumulator{
		opts:  opts,
		state: NewDateState(opts.Century),
		days:  make(map[string][]Observation),
		years: make(map[int]*YearSeries),
	}
}

// Aggregate reads a whole CSV weather history from r. The first line is a
// header and is discarded without being examined.
func Aggregate(r io.Reader, opts Options) (*Accumulator, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	acc := NewAccumulator(opts)
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if err := acc.Add(line); err != nil {
			return nil, &RowError{Line: i + 1, Err: err}
		}
	}

	return acc, nil
}

// Add processes one data line of the form date,precipitation,tempmax,tempmin.
// Rows with an empty field and leap-day rows are skipped without error.
func (a *Accumulator) Add(line string) error {
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return fmt.Errorf("%w: expected 4 fields, got %d", ErrFormat, len(fields))
	}
	for _, f := range fields {
		if f == "" {
			a.skipped++
			return nil
		}
	}

	date, err := a.state.Normalize(fields[0])
	if err != nil {
		return err
	}

	leap := date.MonthDay() == leapDay
	if leap && !a.opts.IncludeLeapDayInYears {
		a.skipped++
		return nil
	}

	precip, err := parseValue("precipitation", fields[1])
	if err != nil {
		return err
	}
	tempMax, err := parseValue("tempmax", fields[2])
	if err != nil {
		return err
	}
	tempMin, err := parseValue("tempmin", fields[3])
	if err != nil {
		return err
	}

	ys, ok := a.years[date.Year]
	if !ok {
		ys = &YearSeries{}
		a.years[date.Year] = ys
	}
	ys.TempMin = append(ys.TempMin, tempMin)
	ys.TempMax = append(ys.TempMax, tempMax)

	if leap {
		a.skipped++
		return nil
	}

	md := date.MonthDay()
	a.days[md] = append(a.days[md], Observation{
		Year:    date.Year,
		Precip:  precip,
		TempMin: tempMin,
		TempMax: tempMax,
	})
	a.lastDate = date.String()
	a.rows++

	return nil
}

// Day returns the observations filed under a "MM/DD" key.
func (a *Accumulator) Day(monthDay string) []Observation {
	return a.days[monthDay]
}

// Year returns the temperatures recorded in a year, or nil.
func (a *Accumulator) Year(year int) *YearSeries {
	return a.years[year]
}

// LastDate is the MM/DD/YYYY date of the last row that reached the per-day map.
func (a *Accumulator) LastDate() string {
	return a.lastDate
}

// Rows is the number of rows that reached the per-day map.
func (a *Accumulator) Rows() int {
	return a.rows
}

// Skipped is the number of rows dropped for an empty field or a leap day.
func (a *Accumulator) Skipped() int {
	return a.skipped
}

func parseValue(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrParse, name, s)
	}
	return v, nil
}
