package timescaledb

var createTablesSQL = []string{
	`CREATE TABLE IF NOT EXISTS climate_runs (
    run_id text PRIMARY KEY,
    last_date text NOT NULL,
    row_count integer NOT NULL,
    skipped integer NOT NULL,
    created_at timestamp WITH TIME ZONE NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS climate_days (
    run_id text NOT NULL REFERENCES climate_runs (run_id) ON DELETE CASCADE,
    day text NOT NULL,
    day_of_year smallint NOT NULL,
    observations integer NOT NULL,
    avg_precip float8 NOT NULL,
    avg_low float8 NOT NULL,
    avg_high float8 NOT NULL,
    min_low float8 NOT NULL,
    max_high float8 NOT NULL,
    min_low_year integer NOT NULL,
    max_high_year integer NOT NULL,
    PRIMARY KEY (run_id, day)
);`,
	`CREATE TABLE IF NOT EXISTS climate_years (
    run_id text NOT NULL REFERENCES climate_runs (run_id) ON DELETE CASCADE,
    year integer NOT NULL,
    min_low float8 NOT NULL,
    max_high float8 NOT NULL,
    PRIMARY KEY (run_id, year)
);`,
	`CREATE INDEX IF NOT EXISTS climate_runs_created_at_idx ON climate_runs (created_at DESC);`,
}
