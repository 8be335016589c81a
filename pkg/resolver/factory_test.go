// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"daml.com/x/depres/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSettings(t *testing.T) {
	home := t.TempDir()
	config := `
default-resolver: everything
resolvers:
  - name: everything
    type: chain
    resolvers: [local, registry, vcs]
  - name: local
    type: file
    root: ` + filepath.ToSlash(filepath.Join(home, "repo")) + `
    local: false
  - name: registry
    type: oci
    registry: localhost:5000
    insecure: true
  - name: vcs
    type: git
    url: https://example.com/modules.git
`
	require.NoError(t, os.WriteFile(filepath.Join(home, settings.ConfigFileName), []byte(config), 0o644))
	s, err := settings.GetWithCustomHome(home)
	require.NoError(t, err)

	rs, err := FromSettings(s, settings.UserAgent("test"))
	require.NoError(t, err)
	require.Len(t, rs, 4)

	assert.Equal(t, TypeFile, rs["local"].TypeName())
	assert.Equal(t, TypeOCI, rs["registry"].TypeName())
	assert.Equal(t, TypeGit, rs["vcs"].TypeName())

	local, err := rs["local"].(*FileSystem).IsLocal()
	require.NoError(t, err)
	assert.False(t, local)

	r, err := rs.Get(s, "")
	require.NoError(t, err)
	assert.Equal(t, "everything", r.Name())
	assert.Len(t, r.(*Chain).Resolvers(), 3)

	_, err = rs.Get(s, "nope")
	assert.Error(t, err)
}
