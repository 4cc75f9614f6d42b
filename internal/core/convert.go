package core

// convert.go turns raw request strings (form values, path segments, recids)
// into typed values bound as query parameters.
//
// Empty or whitespace-only input always converts to a nil value so the
// store writes NULL. pgtype values are driver.Valuer implementations and
// bind against both supported stores.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006-01-02 15:04:05", time.RFC3339,
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// ConvertValue converts raw input for field f into a bindable value.
func ConvertValue(f FieldSpec, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	switch f.Type {
	case FieldInteger:
		s := cleanNumber(raw)
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number for %s: %q", f.Name, raw)
		}
		return i, nil

	case FieldDecimal:
		n := ToPgNumeric(raw)
		if !n.Valid {
			return nil, fmt.Errorf("invalid number for %s: %q", f.Name, raw)
		}
		return n, nil

	case FieldDate:
		d := ToPgDate(raw)
		if !d.Valid {
			return nil, fmt.Errorf("invalid date for %s: %q", f.Name, raw)
		}
		return d, nil

	default:
		return ToPgText(raw), nil
	}
}

// IsNumeric reports whether s is a plain number after currency cleanup.
func IsNumeric(s string) bool {
	return numericRegex.MatchString(cleanNumber(s))
}

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts a string to pgtype.Date.
// Supports multiple date formats and handles 2-digit years with pivot.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
		}
	}

	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ToPgNumeric(s string) pgtype.Numeric {
	s = cleanNumber(s)
	if s == "" || !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// cleanNumber strips currency symbols and thousands separators and turns
// accounting negatives "(1.50)" into "-1.50".
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)

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

	if isNegative && s != "" {
		s = "-" + s
	}
	return s
}

// ParseKeys splits a comma-separated recid list into distinct converted
// key values, preserving first-seen order. Blank segments are skipped.
func ParseKeys(f FieldSpec, recids string) ([]any, []string, error) {
	var values []any
	var raws []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(recids, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true

		v, err := ConvertValue(f, part)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
		raws = append(raws, part)
	}
	return values, raws, nil
}
