// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package filerepo

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func sum(content string) string {
	s := sha256.Sum256([]byte(content))
	return hex.EncodeToString(s[:])
}

func TestListRevisionsAndDescriptor(t *testing.T) {
	ctx := testutil.Context(t)
	root := t.TempDir()
	for _, rev := range []string{"1.0", "1.2", "1.3"} {
		write(t, filepath.Join(root, "acme", "widget", rev, "ivy.yaml"), "rev "+rev)
	}
	r := New(root)

	revs, err := r.ListRevisions(ctx, module.NewModuleID("acme", "widget"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "1.2", "1.3"}, revs)

	b, err := r.FetchDescriptor(ctx, module.NewRevisionID("acme", "widget", "1.2"))
	require.NoError(t, err)
	assert.Equal(t, "rev 1.2", string(b))

	_, err = r.FetchDescriptor(ctx, module.NewRevisionID("acme", "widget", "9.9"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFetchArtifact(t *testing.T) {
	ctx := testutil.Context(t)
	root := t.TempDir()
	mrid := module.NewRevisionID("acme", "widget", "1.2")
	src := filepath.Join(root, "acme", "widget", "1.2", "widget.jar")
	write(t, src, "jar content")
	write(t, src+ChecksumExt, sum("jar content")+"  widget.jar\n")
	a := module.DefaultArtifact(mrid)

	t.Run("local", func(t *testing.T) {
		r := New(root)
		assert.True(t, r.IsLocal())
		res, err := r.FetchArtifact(ctx, a, filepath.Join(t.TempDir(), "unused"))
		require.NoError(t, err)
		assert.Equal(t, src, res.Path)
		assert.True(t, res.Local)
		assert.EqualValues(t, len("jar content"), res.Size)
	})

	t.Run("remote", func(t *testing.T) {
		r := New(root, WithLocal(false))
		dst := filepath.Join(t.TempDir(), "copy.jar")
		res, err := r.FetchArtifact(ctx, a, dst)
		require.NoError(t, err)
		assert.Equal(t, dst, res.Path)
		assert.Equal(t, src, res.Location)
		assert.False(t, res.Local)
		b, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "jar content", string(b))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := New(root).FetchArtifact(ctx, module.DefaultArtifact(mrid.WithRevision("2.0")), "")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		bad := module.NewArtifact(mrid, "bad", "jar", "jar", nil)
		p := filepath.Join(root, "acme", "widget", "1.2", "bad.jar")
		write(t, p, "tampered")
		write(t, p+ChecksumExt, sum("original"))
		_, err := New(root).FetchArtifact(ctx, bad, "")
		assert.ErrorIs(t, err, repository.ErrChecksumMismatch)
	})
}

func TestSetLocal(t *testing.T) {
	r := New(t.TempDir())
	r.SetLocal(false)
	assert.False(t, r.IsLocal())
	r.SetLocal(true)
	assert.True(t, r.IsLocal())
	assert.False(t, repository.IsNetworked(r))
}

func TestCustomPatterns(t *testing.T) {
	ctx := testutil.Context(t)
	root := t.TempDir()
	write(t, filepath.Join(root, "acme", "widget-1.0.yaml"), "d")
	write(t, filepath.Join(root, "acme", "widget-1.0-sources.zip"), "zip")

	r := New(root,
		WithIvyPattern("[organisation]/[module]-[revision].yaml"),
		WithArtifactPattern("[organisation]/[artifact]-[revision]-[classifier].[ext]"),
	)
	revs, err := r.ListRevisions(ctx, module.NewModuleID("acme", "widget"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0"}, revs)

	a := module.NewArtifact(module.NewRevisionID("acme", "widget", "1.0"), "widget", "source", "zip", map[string]string{"classifier": "sources"})
	res, err := r.FetchArtifact(ctx, a, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Size)
}
