package database

import (
	"time"

	"github.com/chrissnell/climate/internal/climate"
)

// ClimateRun is one aggregation run
type ClimateRun struct {
	RunID     string    `gorm:"primaryKey;column:run_id"`
	LastDate  string    `gorm:"column:last_date;not null"`
	RowCount  int       `gorm:"column:row_count;not null"`
	Skipped   int       `gorm:"column:skipped;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for ClimateRun
func (ClimateRun) TableName() string {
	return "climate_runs"
}

// ClimateDay is the climate of one calendar day within a run
type ClimateDay struct {
	RunID        string  `gorm:"primaryKey;column:run_id"`
	Day          string  `gorm:"primaryKey;column:day"`
	DayOfYear    int     `gorm:"column:day_of_year;not null"`
	Observations int     `gorm:"column:observations;not null"`
	AvgPrecip    float64 `gorm:"column:avg_precip;not null"`
	AvgLow       float64 `gorm:"column:avg_low;not null"`
	AvgHigh      float64 `gorm:"column:avg_high;not null"`
	MinLow       float64 `gorm:"column:min_low;not null"`
	MaxHigh      float64 `gorm:"column:max_high;not null"`
	MinLowYear   int     `gorm:"column:min_low_year;not null"`
	MaxHighYear  int     `gorm:"column:max_high_year;not null"`
}

// TableName specifies the table name for ClimateDay
func (ClimateDay) TableName() string {
	return "climate_days"
}

// ClimateYear holds the extremes of one year within a run
type ClimateYear struct {
	RunID   string  `gorm:"primaryKey;column:run_id"`
	Year    int     `gorm:"primaryKey;column:year;autoIncrement:false"`
	MinLow  float64 `gorm:"column:min_low;not null"`
	MaxHigh float64 `gorm:"column:max_high;not null"`
}

// TableName specifies the table name for ClimateYear
func (ClimateYear) TableName() string {
	return "climate_years"
}

// ModelsFromClimate converts a reduced climate into its table rows
func ModelsFromClimate(c *climate.Climate, createdAt time.Time) (ClimateRun, []ClimateDay, []ClimateYear) {
	run := ClimateRun{
		RunID:     c.RunID,
		LastDate:  c.LastDate,
		RowCount:  c.Rows,
		Skipped:   c.Skipped,
		CreatedAt: createdAt,
	}

	days := make([]ClimateDay, len(c.Days))
	for i, d := range c.Days {
		days[i] = ClimateDay{
			RunID:        c.RunID,
			Day:          d.MonthDay,
			DayOfYear:    d.DayOfYear,
			Observations: d.Count,
			AvgPrecip:    d.AvgPrecip,
			AvgLow:       d.AvgLow,
			AvgHigh:      d.AvgHigh,
			MinLow:       d.MinLow,
			MaxHigh:      d.MaxHigh,
			MinLowYear:   d.MinLowYear,
			MaxHighYear:  d.MaxHighYear,
		}
	}

	years := make([]ClimateYear, len(c.Years))
	for i, y := range c.Years {
		years[i] = ClimateYear{
			RunID:   c.RunID,
			Year:    y.Year,
			MinLow:  y.MinLow,
			MaxHigh: y.MaxHigh,
		}
	}

	return run, days, years
}
