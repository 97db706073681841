package hr

// convert.go provides cell-level coercion from raw text to canonical values.
//
// These functions handle the messy reality of exported HR data:
//   - Multiple date and timestamp formats (US, EU, ISO, etc.)
//   - Currency symbols and thousand separators in numbers
//   - Excel formula prefixes (="value")
//   - Common CSV artifacts (stray quotes, whitespace)
//
// All To* functions return pgtype values with Valid=false for empty or
// unparseable input. A bad cell degrades to a missing marker; it never stops
// the pipeline.

import (
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/spf13/cast"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century.
var TwoDigitYearPivot = 20

// Layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339,
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// CleanCell removes common CSV artifacts from a cell value:
// trims whitespace, removes Excel formula prefixes (="..."), and strips
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// ToTimestamp converts a raw cell to pgtype.Timestamp. Supports multiple
// date and timestamp formats and handles 2-digit years with a pivot.
func ToTimestamp(s string) pgtype.Timestamp {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Timestamp{}
	}

	// 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Timestamp{Time: t, Valid: true}
		}
	}

	// 2-digit year layouts with pivot year adjustment
	pivotYear := time.Now().Year() + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Timestamp{Time: t, Valid: true}
		}
	}

	return pgtype.Timestamp{}
}

// ToFloat converts a raw cell to pgtype.Float8. Handles currency symbols,
// thousands separators, and accounting format (parentheses for negative).
func ToFloat(s string) pgtype.Float8 {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Float8{}
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Float8{}
	}

	f, err := cast.ToFloat64E(s)
	if err != nil {
		return pgtype.Float8{}
	}

	return pgtype.Float8{Float64: f, Valid: true}
}
