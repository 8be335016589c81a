// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daml.com/x/depres/pkg/settings"
	"github.com/google/go-containerregistry/pkg/registry"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2/registry/remote/auth"
)

// StartRegistry serves an in-memory OCI registry for the duration of the test.
// It returns the registry's host:port and a client talking plain http to it.
func StartRegistry(t *testing.T) (host string, client *auth.Client) {
	reg := httptest.NewServer(registry.New())
	t.Cleanup(func() { reg.Close() })

	return strings.TrimPrefix(reg.URL, "http://"), &auth.Client{Client: reg.Client()}
}

// Settings returns default settings rooted in a fresh temp dir, with DEPRES_HOME pointing at it
func Settings(t *testing.T) *settings.Settings {
	home := t.TempDir()
	t.Setenv(settings.HomeEnvVar, home)
	s := settings.Default(home)
	require.NoError(t, s.EnsureDirs())
	return s
}

// WriteFile writes content to path, creating parent dirs
func WriteFile(t *testing.T, path string, content []byte) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func Context(t *testing.T) context.Context {
	ctx, stopFn := context.WithCancel(context.Background())
	t.Cleanup(stopFn)
	return ctx
}
