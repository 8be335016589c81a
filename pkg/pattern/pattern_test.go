// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"daml.com/x/depres/pkg/module"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestSubstitute(t *testing.T) {
	a := module.NewArtifact(module.NewRevisionID("acme", "widget", "1.2"), "widget-api", "jar", "jar", map[string]string{"classifier": "sources"})

	assert.Equal(t, "acme/widget/1.2/widget-api.jar",
		Substitute("[organisation]/[module]/[revision]/[artifact].[ext]", ArtifactTokens(a)))
	assert.Equal(t, "acme/widget/1.2/widget-api-sources.jar",
		Substitute("[organisation]/[module]/[revision]/[artifact]-[classifier].[ext]", ArtifactTokens(a)))
	assert.Equal(t, "acme/[module]/x",
		Substitute("[organisation]/[module]/x", map[string]string{Organisation: "acme"}))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{Organisation, Module, Revision, Artifact, Ext},
		Tokens("[organisation]/[module]/[revision]/[artifact]-[revision].[ext]"))
}

func TestListValues(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "acme", "widget", "1.0", "ivy.yaml"))
	touch(t, filepath.Join(root, "acme", "widget", "1.2", "ivy.yaml"))
	touch(t, filepath.Join(root, "acme", "widget", "1.3", "ivy.yaml"))
	// no descriptor
	require.NoError(t, os.MkdirAll(filepath.Join(root, "acme", "widget", "2.0"), 0o755))

	fixed := ModuleTokens(module.NewModuleID("acme", "widget"))
	values, err := ListValues(root, "[organisation]/[module]/[revision]/ivy.yaml", Revision, fixed)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "1.2", "1.3"}, values)

	values, err = ListValues(root, "[organisation]/[module]/[revision]/ivy.yaml", Revision, ModuleTokens(module.NewModuleID("acme", "nope")))
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = ListValues(root, "[organisation]/[module]/ivy.yaml", Revision, fixed)
	assert.Error(t, err)

	_, err = ListValues(root, "[organisation]/[module]/[revision]/ivy.yaml", Revision, nil)
	assert.Error(t, err)
}

func TestListValuesWithinSegment(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "acme", "widget-1.0.yaml"))
	touch(t, filepath.Join(root, "acme", "widget-1.1.yaml"))
	touch(t, filepath.Join(root, "acme", "gadget-1.1.yaml"))

	values, err := ListValues(root, "[organisation]/[module]-[revision].yaml", Revision, ModuleTokens(module.NewModuleID("acme", "widget")))
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "1.1"}, values)
}
