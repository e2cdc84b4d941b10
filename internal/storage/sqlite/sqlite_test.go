package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrissnell/climate/internal/climate"
	"go.uber.org/zap"
)

func testClimate(t *testing.T) *climate.Climate {
	t.Helper()
	input := "date,precip,tempmax,tempmin\n" +
		"1/1/97,0.0,40.0,20.0\n" +
		"1/2/97,0.3,42.0,21.0\n" +
		"1/1/98,0.1,38.0,18.5\n"

	acc, err := climate.Aggregate(strings.NewReader(input), climate.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := acc.Reduce()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestStoreClimate(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "climate.db"), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()

	c := testClimate(t)
	if err := s.StoreClimate(ctx, c); err != nil {
		t.Fatalf("StoreClimate returned error: %v", err)
	}

	days, err := s.LoadDays(ctx, c.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != len(c.Days) {
		t.Fatalf("stored %d days, expected %d", len(days), len(c.Days))
	}
	for i := range days {
		if days[i] != c.Days[i] {
			t.Errorf("day %d = %+v, expected %+v", i, days[i], c.Days[i])
		}
	}

	var years int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM climate_years WHERE run_id = ?", c.RunID).Scan(&years); err != nil {
		t.Fatal(err)
	}
	if years != len(c.Years) {
		t.Errorf("stored %d years, expected %d", years, len(c.Years))
	}
}

func TestStoreClimateTwiceFails(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "climate.db"), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	c := testClimate(t)
	if err := s.StoreClimate(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := s.StoreClimate(ctx, c); err == nil {
		t.Fatal("expected a duplicate run id to be rejected")
	}

	days, err := s.LoadDays(ctx, c.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != len(c.Days) {
		t.Errorf("failed store left %d days, expected %d", len(days), len(c.Days))
	}
}

func TestLoadDaysUnknownRun(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "climate.db"), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	days, err := s.LoadDays(ctx, "no-such-run")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 0 {
		t.Errorf("expected no days, got %d", len(days))
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "climate.db")

	s, err := New(ctx, path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	c := testClimate(t)
	if err := s.StoreClimate(ctx, c); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = New(ctx, path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("reopening returned error: %v", err)
	}
	defer s.Close()

	days, err := s.LoadDays(ctx, c.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != len(c.Days) {
		t.Errorf("found %d days after reopening, expected %d", len(days), len(c.Days))
	}
}
