/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"fmt"
	"strings"
)

// NormalizeStartTime validates an HH:MM start time and returns the stored
// HHMM form. The minute must sit on the 15-minute grid.
func NormalizeStartTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", fmt.Errorf("start time %q must be in HH:MM format", s)
	}
	hour, minute := parts[0], parts[1]

	if hour < "00" || hour > "23" || !digits(hour) {
		return "", fmt.Errorf("start time %q has invalid hour", s)
	}
	switch minute {
	case "00", "15", "30", "45":
	default:
		return "", fmt.Errorf("start time %q minute must be an interval of 15 minutes", s)
	}
	return hour + minute, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
