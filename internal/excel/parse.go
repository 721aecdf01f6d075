package excel

// parse.go provides tolerant cell coercion for workbook data.
//
// Spreadsheets exported from different tools disagree on how dates
// and booleans are written: native date cells surface as serial
// numbers, hand-typed cells as text in half a dozen layouts, and
// booleans as Yes/No, TRUE/FALSE, or single letters. The TryParse*
// functions make the "unparseable means default" policy an explicit,
// testable branch instead of silent coercion: they report failure,
// they never return an error.

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years
// that would land more than this many years in the future are assumed
// to be in the previous century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
		"Jan 2, 2006", "January 2, 2006", "2 Jan 2006",
		"2006-01-02 15:04:05", time.RFC3339,
	}
)

// TryParseDate converts a cell value to a date. It accepts spreadsheet
// serial-date numbers (days since the 1900 epoch, converted through
// excelize) and the common text layouts. Results carry the local zone:
// sheet dates are calendar days in the coach's timezone, and a UTC
// reading would shift the day for zones west of UTC. Anything
// unparseable reports ok=false; empty cells are unparseable, not an
// error.
func TryParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Serial date cells arrive as bare numbers when the sheet carries
	// no date style.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return localWallClock(t), true
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// localWallClock rebuilds t's wall-clock reading in the local zone.
// ExcelDateToTime returns UTC instants.
func localWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// TryParseBool converts a cell value to a boolean. Yes/true/y count
// as true and no/false/n/0 as false, case-insensitively; anything
// else reports ok=false. Callers that only care about truthiness can
// ignore ok, which matches the "everything else is false" import rule.
func TryParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "y", "1":
		return true, true
	case "no", "false", "n", "0", "":
		return false, true
	default:
		return false, false
	}
}

// cleanCell trims whitespace and surrounding quote artifacts left by
// other spreadsheet tools.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}
	return strings.Trim(s, `"'`)
}

// headerIndex maps lowercased, cleaned header names to their column
// position in the sheet.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(cleanCell(h))
		if key != "" {
			idx[key] = i
		}
	}
	return idx
}

// cellValue returns the cleaned cell at column i, tolerating the
// ragged rows excelize produces when trailing cells are empty.
func cellValue(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return cleanCell(row[i])
}

// lookup returns the first alias present in the header, in alias
// order, or "" when none of them is.
func (idx headerIndex) lookup(row []string, aliases ...string) string {
	for _, alias := range aliases {
		if i, ok := idx[alias]; ok {
			if v := cellValue(row, i); v != "" {
				return v
			}
		}
	}
	return ""
}

// has reports whether any of the aliases is a column in the sheet.
func (idx headerIndex) has(aliases ...string) bool {
	for _, alias := range aliases {
		if _, ok := idx[alias]; ok {
			return true
		}
	}
	return false
}
