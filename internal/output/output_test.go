package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/vmihailenco/msgpack/v5"
)

func scenarioClimate(t *testing.T) *climate.Climate {
	t.Helper()
	input := "date,precip,tempmax,tempmin\n" +
		"2020-01-01,0.0,50.0,30.0\n" +
		"2020-01-02,0.25,48.0,29.5\n" +
		"2021-01-01,0.1,55.0,32.0\n"

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

func TestRenderLegacy(t *testing.T) {
	out, err := Render(scenarioClimate(t), FormatLegacy)
	if err != nil {
		t.Fatal(err)
	}

	expected := "Day,Avg precip,Avg low,Avg high,Min low,Max high,Min low year,Max high year\n" +
		"01/01/2021," +
		"{'01/01': 0.1, '01/02': 0.2}," +
		"{'01/01': 31.0, '01/02': 29.5}," +
		"{'01/01': 52.5, '01/02': 48.0}," +
		"{'01/01': 30.0, '01/02': 29.5}," +
		"{'01/01': 55.0, '01/02': 48.0}," +
		"{2020: 29.5, 2021: 32.0}," +
		"{2020: 50.0, 2021: 55.0}\n"

	if string(out) != expected {
		t.Errorf("legacy output mismatch\n got: %q\nwant: %q", out, expected)
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render(scenarioClimate(t), FormatTable)
	if err != nil {
		t.Fatal(err)
	}

	expected := "Day,AvgPrecip,AvgLow,AvgHigh,MinLow,MaxHigh,MinLowYear,MaxHighYear\n" +
		"01/01,0.1,31.0,52.5,30.0,55.0,2020,2021\n" +
		"01/02,0.2,29.5,48.0,29.5,48.0,2020,2020\n"

	if string(out) != expected {
		t.Errorf("table output mismatch\n got: %q\nwant: %q", out, expected)
	}
}

func TestRenderJSON(t *testing.T) {
	c := scenarioClimate(t)
	out, err := Render(c, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	var decoded climate.Climate
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.RunID != c.RunID || len(decoded.Days) != 2 || decoded.Days[1].MonthDay != "01/02" {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestRenderMsgPack(t *testing.T) {
	out, err := Render(scenarioClimate(t), FormatMsgPack)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := msgpack.NewDecoder(bytes.NewReader(out)).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["last_date"] != "01/01/2021" {
		t.Errorf("last_date = %v", decoded["last_date"])
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"", FormatLegacy, false},
		{"legacy", FormatLegacy, false},
		{"TABLE", FormatTable, false},
		{"json", FormatJSON, false},
		{"msgpack", FormatMsgPack, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{30, "30.0"},
		{0.1, "0.1"},
		{-0.5, "-0.5"},
		{123456789, "123456789.0"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.expected {
			t.Errorf("FormatFloat(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "climate.csv")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("new contents\n")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new contents\n" {
		t.Errorf("file contents = %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "climate.csv")
	if err := WriteFileAtomic(path, []byte("x")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed write")
	}
}
