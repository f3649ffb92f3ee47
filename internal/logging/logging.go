/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog for the process. The Lambda entrypoint logs JSON
// for CloudWatch; everything else gets the console writer.
func Setup(environment string) zerolog.Logger {
	var writer io.Writer = zerolog.ConsoleWriter{Out: os.Stdout}
	if environment == "lambda" {
		writer = os.Stdout
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if environment == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(writer).With().Timestamp().Logger().Level(level)
	log.Logger = logger
	return logger
}
