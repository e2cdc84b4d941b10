package timescaledb

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/internal/database"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewUnreachableDatabase(t *testing.T) {
	_, err := New(context.Background(), "host=127.0.0.1 port=1 user=climate dbname=climate sslmode=disable connect_timeout=1", zap.NewNop().Sugar())
	if err == nil {
		t.Fatal("expected an error connecting to a closed port")
	}
}

func TestCreateTablesSQL(t *testing.T) {
	if len(createTablesSQL) == 0 {
		t.Fatal("no table definitions")
	}
	for i, stmt := range createTablesSQL {
		if stmt == "" {
			t.Errorf("statement %d is empty", i)
		}
	}
}

// dryRunDB builds statements without a server and records how many rows
// each INSERT carries, keyed by table.
func dryRunDB(t *testing.T) (*gorm.DB, map[string][]int) {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=climate dbname=climate sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("could not open dry-run connection: %v", err)
	}

	inserts := make(map[string][]int)
	err = db.Callback().Create().After("gorm:create").Register("climate:count_rows", func(tx *gorm.DB) {
		rows := 1
		if v := reflect.Indirect(reflect.ValueOf(tx.Statement.Dest)); v.Kind() == reflect.Slice {
			rows = v.Len()
		}
		inserts[tx.Statement.Table] = append(inserts[tx.Statement.Table], rows)
	})
	if err != nil {
		t.Fatalf("could not register callback: %v", err)
	}

	return db, inserts
}

func TestStoreModels(t *testing.T) {
	var b strings.Builder
	b.WriteString("date,precip,tempmax,tempmin\n")
	start := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 250; i++ {
		b.WriteString(start.AddDate(0, 0, i).Format("2006-01-02") + ",0.1,70.0,50.0\n")
	}

	acc, err := climate.Aggregate(strings.NewReader(b.String()), climate.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := acc.Reduce()
	if err != nil {
		t.Fatal(err)
	}

	run, days, years := database.ModelsFromClimate(c, time.Now().UTC())
	if len(days) != 250 || len(years) != 2 {
		t.Fatalf("expected 250 days and 2 years, got %d and %d", len(days), len(years))
	}
	if years[0].Year != 2020 || years[1].Year != 2021 {
		t.Errorf("unexpected years: %+v", years)
	}
	for _, d := range days {
		if d.RunID != c.RunID {
			t.Fatalf("day %s has run id %q, expected %q", d.Day, d.RunID, c.RunID)
		}
	}

	db, inserts := dryRunDB(t)
	if err := storeModels(db, run, days, years); err != nil {
		t.Fatalf("storeModels returned error: %v", err)
	}

	expected := map[string][]int{
		"climate_runs":  {1},
		"climate_days":  {100, 100, 50},
		"climate_years": {2},
	}
	if !reflect.DeepEqual(inserts, expected) {
		t.Errorf("inserts = %v, expected %v", inserts, expected)
	}
}
