// Package output renders a reduced climate and writes it to disk.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/pkg/responseformat"
)

// Format selects how a climate is rendered.
type Format string

const (
	// FormatLegacy is a header plus a single row whose cells hold whole
	// day- or year-keyed mappings.
	FormatLegacy Format = "legacy"
	// FormatTable is one CSV row per calendar day.
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatMsgPack Format = "msgpack"
)

const (
	legacyHeader = "Day,Avg precip,Avg low,Avg high,Min low,Max high,Min low year,Max high year"
)

var tableHeader = []string{"Day", "AvgPrecip", "AvgLow", "AvgHigh", "MinLow", "MaxHigh", "MinLowYear", "MaxHighYear"}

// ParseFormat validates a format name. An empty name selects FormatLegacy.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatLegacy:
		return FormatLegacy, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMsgPack:
		return FormatMsgPack, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s. Use 'legacy', 'table', 'json' or 'msgpack'", s)
	}
}

// Render builds the complete output in memory.
func Render(c *climate.Climate, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch f {
	case FormatLegacy:
		err = writeLegacy(&buf, c)
	case FormatTable:
		err = writeTable(&buf, c)
	case FormatJSON:
		err = responseformat.NewFormatter().EncodeJSON(&buf, c)
	case FormatMsgPack:
		err = responseformat.NewFormatter().EncodeMsgPack(&buf, c)
	default:
		err = fmt.Errorf("unsupported output format: %s", f)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeLegacy(buf *bytes.Buffer, c *climate.Climate) error {
	dayMapping := func(value func(climate.DayClimate) string) string {
		entries := make([]string, len(c.Days))
		for i, d := range c.Days {
			entries[i] = "'" + d.MonthDay + "': " + value(d)
		}
		return "{" + strings.Join(entries, ", ") + "}"
	}
	yearMapping := func(value func(climate.YearClimate) float64) string {
		entries := make([]string, len(c.Years))
		for i, y := range c.Years {
			entries[i] = strconv.Itoa(y.Year) + ": " + FormatFloat(value(y))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	}

	cells := []string{
		c.LastDate,
		dayMapping(func(d climate.DayClimate) string { return FormatFloat(d.AvgPrecip) }),
		dayMapping(func(d climate.DayClimate) string { return FormatFloat(d.AvgLow) }),
		dayMapping(func(d climate.DayClimate) string { return FormatFloat(d.AvgHigh) }),
		dayMapping(func(d climate.DayClimate) string { return FormatFloat(d.MinLow) }),
		dayMapping(func(d climate.DayClimate) string { return FormatFloat(d.MaxHigh) }),
		yearMapping(func(y climate.YearClimate) float64 { return y.MinLow }),
		yearMapping(func(y climate.YearClimate) float64 { return y.MaxHigh }),
	}

	buf.WriteString(legacyHeader + "\n")
	buf.WriteString(strings.Join(cells, ",") + "\n")
	return nil
}

func writeTable(buf *bytes.Buffer, c *climate.Climate) error {
	w := csv.NewWriter(buf)
	if err := w.Write(tableHeader); err != nil {
		return err
	}
	for _, d := range c.Days {
		record := []string{
			d.MonthDay,
			FormatFloat(d.AvgPrecip),
			FormatFloat(d.AvgLow),
			FormatFloat(d.AvgHigh),
			FormatFloat(d.MinLow),
			FormatFloat(d.MaxHigh),
			strconv.Itoa(d.MinLowYear),
			strconv.Itoa(d.MaxHighYear),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// FormatFloat prints the shortest text that reads back as v, always with a
// decimal point or exponent: 30 prints as "30.0", 0.00001 as "1e-05".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
