// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gedcom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var months = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// phraseRegex matches the free text part of an interpreted date, e.g.
// "INT 1900 (about then)".
var phraseRegex = regexp.MustCompile(`\([^)]*\)`)

// maxYearDigits bounds a year written after its month.
const maxYearDigits = 4

// yearRegex matches a year, including the dual year form "1750/51".
var yearRegex = regexp.MustCompile(`^(\d{3,4})(?:/\d{1,2})?$`)

// ParseDate reduces a GEDCOM date phrase to the earliest value it can denote.
// Qualifiers (ABT, BEF, AFT, EST, CAL, INT) are ignored and ranges (BET..AND,
// FROM..TO) collapse to their first bound. Missing month or day become 1.
// Returns nil when no year can be found.
func ParseDate(raw string) *Date {
	raw = strings.TrimSpace(raw)
	text := strings.ToUpper(phraseRegex.ReplaceAllString(raw, " "))

	day, month := 0, 0
	for _, tok := range strings.Fields(text) {
		// Calendar escapes such as @#DJULIAN@.
		if strings.HasPrefix(tok, "@#") {
			continue
		}
		if m, ok := months[tok]; ok {
			month = m
			continue
		}
		if ym := yearRegex.FindStringSubmatch(tok); ym != nil {
			year, _ := strconv.Atoi(ym[1])
			return newDate(year, month, day, raw)
		}
		if n, err := strconv.Atoi(tok); err == nil {
			if month == 0 {
				day = n
				continue
			}
			// A number after the month is the year, e.g. "MAR 85".
			if len(tok) <= maxYearDigits {
				return newDate(n, month, day, raw)
			}
		}
	}
	return nil
}

func newDate(year, month, day int, raw string) *Date {
	if month < 1 || month > 12 {
		month, day = 1, 1
	}
	if day < 1 || day > 31 {
		day = 1
	}
	return &Date{Year: year, Month: month, Day: day, Raw: raw}
}

// Equal reports whether two dates denote the same calendar value.
func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// String renders the normalized value as yyyy-mm-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
