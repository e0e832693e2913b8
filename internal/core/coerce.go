// Package core holds the record model and the field coercion policy.
//
// This file contains the parse-or-default functions applied to every
// raw field during normalization. The policy is total on purpose: a
// malformed value degrades to a safe default (0 for numerics, the zero
// time for dates) so a single bad field can never drop its row and a
// single bad row can never abort a file.
package core

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order by DateOrAbsent. The exports use the
// French day-first convention; ISO dates are accepted as a fallback.
// Unpadded layouts also match zero-padded input, so "2/1/2006" covers
// both "2/1/2024" and "02/01/2024".
var dateLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006",
	"2.1.2006",
	"2006-1-2",
}

// NumberOrZero parses a decimal text field, accepting the decimal
// comma used by the exports. Unparseable input, including the empty
// string, maps to exactly 0.
//
// Examples:
//
//	NumberOrZero("12,5") -> 12.5
//	NumberOrZero("abc")  -> 0
//	NumberOrZero("")     -> 0
func NumberOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// DateOrAbsent parses a punch date using the day-first convention,
// truncated to UTC midnight. Unparseable input maps to the zero time,
// the absent marker understood by Record.HasDate.
func DateOrAbsent(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t)
		}
	}
	return time.Time{}
}
