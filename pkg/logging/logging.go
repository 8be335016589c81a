// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log/slog"
	"os"

	"daml.com/x/depres/pkg/settings"
)

func InitLogging() error {
	logLevel, ok := os.LookupEnv(settings.LogLevelEnvVar)
	if !ok {
		return initLogging(os.Stderr, "info")
	}
	return initLogging(os.Stderr, logLevel)
}

func initLogging(w io.Writer, logLevel string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(logLevel)); err != nil {
		return err
	}

	slogHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(slogHandler))
	return nil
}
