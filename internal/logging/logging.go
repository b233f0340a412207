// Copyright 2026 The parnum Authors. SPDX-License-Identifier: Apache-2.0

// Package logging builds the zap loggers used by the parnum command.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a logger at level ("debug", "info", "warn", "error"). The json
// format uses zap's production encoder; console uses the development one.
// Logs go to stderr so results on stdout stay parseable.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var config zap.Config
	switch strings.ToLower(format) {
	case "", FormatJSON:
		config = zap.NewProductionConfig()
	case FormatConsole, "text":
		config = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build logger: %w", err)
	}
	return logger, nil
}
