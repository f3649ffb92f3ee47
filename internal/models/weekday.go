/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the scheduling day label, enumerated 0=Monday..6=Sunday.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// AllWeekdays lists the seven labels in Monday-first order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a timestamp's day-of-week onto the Monday-first enumeration.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-first; shift so Monday is 0.
	return AllWeekdays[(int(t.Weekday())+6)%7]
}

// ParseWeekday normalizes and validates a single day label.
func ParseWeekday(s string) (Weekday, error) {
	day := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	for _, d := range AllWeekdays {
		if day == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("%q is not one of %v", s, AllWeekdays)
}

// ParseWeekdays parses a comma delimited day list, deduplicating while
// preserving first-seen order.
func ParseWeekdays(s string) ([]Weekday, error) {
	var days []Weekday
	seen := make(map[Weekday]struct{})
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		day, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays in %q", s)
	}
	return days, nil
}
