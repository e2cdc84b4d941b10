package climate

import (
	"maps"
	"math/big"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/soniakeys/meeus/v3/julian"
	"gonum.org/v1/gonum/floats"
)

// Day-of-year ordinals are reported for a common (non-leap) year.
const referenceYear = 2001

// DayClimate is the climate of one calendar day across every year of input.
type DayClimate struct {
	MonthDay    string  `json:"day"`
	DayOfYear   int     `json:"day_of_year"`
	Count       int     `json:"count"`
	AvgPrecip   float64 `json:"avg_precip"`
	AvgLow      float64 `json:"avg_low"`
	AvgHigh     float64 `json:"avg_high"`
	MinLow      float64 `json:"min_low"`
	MaxHigh     float64 `json:"max_high"`
	MinLowYear  int     `json:"min_low_year"`
	MaxHighYear int     `json:"max_high_year"`
}

// YearClimate holds the extremes of a single year.
type YearClimate struct {
	Year    int     `json:"year"`
	MinLow  float64 `json:"min_low"`
	MaxHigh float64 `json:"max_high"`
}

// Climate is the reduced result of an aggregation run.
type Climate struct {
	RunID    string        `json:"run_id"`
	LastDate string        `json:"last_date"`
	Rows     int           `json:"rows"`
	Skipped  int           `json:"skipped"`
	Days     []DayClimate  `json:"days"`
	Years    []YearClimate `json:"years"`
}

// Reduce computes the climate from everything accumulated so far. Days are
// ordered by their "MM/DD" key and years ascending.
func (a *Accumulator) Reduce() (*Climate, error) {
	if len(a.days) == 0 {
		return nil, ErrEmptyInput
	}

	c := &Climate{
		RunID:    uuid.New().String(),
		LastDate: a.lastDate,
		Rows:     a.rows,
		Skipped:  a.skipped,
		Days:     make([]DayClimate, 0, len(a.days)),
		Years:    make([]YearClimate, 0, len(a.years)),
	}

	for _, md := range slices.Sorted(maps.Keys(a.days)) {
		c.Days = append(c.Days, reduceDay(md, a.days[md]))
	}

	for _, year := range slices.Sorted(maps.Keys(a.years)) {
		ys := a.years[year]
		c.Years = append(c.Years, YearClimate{
			Year:    year,
			MinLow:  floats.Min(ys.TempMin),
			MaxHigh: floats.Max(ys.TempMax),
		})
	}

	return c, nil
}

func reduceDay(md string, obs []Observation) DayClimate {
	precip := make([]float64, len(obs))
	lows := make([]float64, len(obs))
	highs := make([]float64, len(obs))
	for i, o := range obs {
		precip[i] = o.Precip
		lows[i] = o.TempMin
		highs[i] = o.TempMax
	}

	lowIdx := floats.MinIdx(lows)
	highIdx := floats.MaxIdx(highs)

	return DayClimate{
		MonthDay:    md,
		DayOfYear:   dayOfYear(md),
		Count:       len(obs),
		AvgPrecip:   Round1(mean(precip)),
		AvgLow:      Round1(mean(lows)),
		AvgHigh:     Round1(mean(highs)),
		MinLow:      lows[lowIdx],
		MaxHigh:     highs[highIdx],
		MinLowYear:  obs[lowIdx].Year,
		MaxHighYear: obs[highIdx].Year,
	}
}

// mean returns the float64 nearest to the exact mean of xs.
func mean(xs []float64) float64 {
	sum := new(big.Rat)
	for _, x := range xs {
		r := new(big.Rat).SetFloat64(x)
		if r == nil {
			// NaN or an infinity; plain arithmetic already gives the answer
			return floats.Sum(xs) / float64(len(xs))
		}
		sum.Add(sum, r)
	}
	sum.Quo(sum, new(big.Rat).SetInt64(int64(len(xs))))
	m, _ := sum.Float64()
	return m
}

// Round1 rounds to one decimal place, resolving exact ties to even.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// dayOfYear expects a key built by Date.MonthDay.
func dayOfYear(md string) int {
	m, _ := strconv.Atoi(md[:2])
	d, _ := strconv.Atoi(md[3:])
	return julian.DayOfYearGregorian(referenceYear, m, d)
}
