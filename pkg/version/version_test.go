// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	Version, Build, BuildDate = "", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, Build, BuildDate = "", "", "" })

	info := Get()
	assert.Equal(t, "unknown", info.Version)
	assert.Equal(t, "abc123", info.Build)
	assert.Equal(t, "2026-01-02", info.BuildDate)
	assert.Equal(t, "depres/unknown", UserAgent())

	Version = "1.2.3"
	assert.Equal(t, "depres/1.2.3", UserAgent())
}
