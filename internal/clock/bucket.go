/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package clock converts invocation timestamps into the canonical
// quarter-hour launch buckets the scheduler keys on.
package clock

import (
	"fmt"
	"time"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// Bucket is the canonical launch slot derived from an invocation timestamp:
// one of the 96 quarter-hour slots of a day, plus the weekday and date it
// fell on.
type Bucket struct {
	Hour    string // "00".."23" ("24" for the unwrapped final slot, see At)
	Minute  string // one of "00", "15", "30", "45"
	Weekday models.Weekday
	Date    string // MM/DD/YYYY
}

// StartTime returns the bucket in the stored HHMM form.
func (b Bucket) StartTime() string {
	return b.Hour + b.Minute
}

// At rounds t up to the nearest quarter-hour grid line. The scheduled
// trigger fires on the grid, so the invocation timestamp lands a little
// before or after the slot it is meant to serve; rounding recovers the slot.
//
// Minutes 53-59 round to "00" of the following hour. Hour 23 is not wrapped
// into the next day: the result is the unreachable bucket "2400", so the
// final quarter-hour of a day never matches a stored config. Known quirk,
// kept for parity with existing deployments.
func At(t time.Time) Bucket {
	hour := t.Hour()
	minute := t.Minute()

	var slot string
	switch {
	case minute <= 7:
		slot = "00"
	case minute <= 22:
		slot = "15"
	case minute <= 37:
		slot = "30"
	case minute <= 52:
		slot = "45"
	default:
		slot = "00"
		hour++
	}

	return Bucket{
		Hour:    fmt.Sprintf("%02d", hour),
		Minute:  slot,
		Weekday: models.WeekdayOf(t),
		Date:    t.Format("01/02/2006"),
	}
}

// NextGridTime returns the first instant strictly after t that sits on the
// quarter-hour grid. The daemon loop uses it to align its ticks.
func NextGridTime(t time.Time) time.Time {
	aligned := t.Truncate(15 * time.Minute)
	if !aligned.After(t) {
		aligned = aligned.Add(15 * time.Minute)
	}
	return aligned
}
