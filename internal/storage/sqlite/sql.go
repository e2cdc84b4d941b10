package sqlite

import "github.com/chrissnell/climate/pkg/migrate"

var migrations = []migrate.Migration{
	{Version: 1, Name: "create climate_runs", Up: `CREATE TABLE climate_runs (
		run_id TEXT PRIMARY KEY,
		last_date TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`},
	{Version: 2, Name: "create climate_days", Up: `CREATE TABLE climate_days (
		run_id TEXT NOT NULL REFERENCES climate_runs(run_id),
		day TEXT NOT NULL,
		day_of_year INTEGER NOT NULL,
		observations INTEGER NOT NULL,
		avg_precip REAL NOT NULL,
		avg_low REAL NOT NULL,
		avg_high REAL NOT NULL,
		min_low REAL NOT NULL,
		max_high REAL NOT NULL,
		min_low_year INTEGER NOT NULL,
		max_high_year INTEGER NOT NULL,
		PRIMARY KEY (run_id, day)
	)`},
	{Version: 3, Name: "create climate_years", Up: `CREATE TABLE climate_years (
		run_id TEXT NOT NULL REFERENCES climate_runs(run_id),
		year INTEGER NOT NULL,
		min_low REAL NOT NULL,
		max_high REAL NOT NULL,
		PRIMARY KEY (run_id, year)
	)`},
	{Version: 4, Name: "index runs by creation time", Up: `CREATE INDEX climate_runs_created_at_idx ON climate_runs (created_at)`},
}

const insertRunSQL = `INSERT INTO climate_runs (run_id, last_date, row_count, skipped, created_at)
	VALUES (?, ?, ?, ?, ?)`

const insertDaySQL = `INSERT INTO climate_days (run_id, day, day_of_year, observations, avg_precip, avg_low,
	avg_high, min_low, max_high, min_low_year, max_high_year)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertYearSQL = `INSERT INTO climate_years (run_id, year, min_low, max_high) VALUES (?, ?, ?, ?)`

const selectDaysSQL = `SELECT day, day_of_year, observations, avg_precip, avg_low, avg_high,
	min_low, max_high, min_low_year, max_high_year
	FROM climate_days WHERE run_id = ? ORDER BY day`
