/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version provides build version information.
package version

// Version is the current version of the workstation scheduler.
// Set at build time via ldflags:
//
//	-X github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/version.Version=X.Y.Z
var Version = "1.2.0"
