// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"testing"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/report"
	"daml.com/x/depres/pkg/resolutionerrors"
	"daml.com/x/depres/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	ctx := testutil.Context(t)
	s := testutil.Settings(t)
	first := NewFileSystem("first", withRevisions("1.0", "1.1"), s)
	second := NewFileSystem("second", withRevisions("2.0"), s)

	t.Run("best of all", func(t *testing.T) {
		c := NewChain("all", s, false, first, second)
		assert.Equal(t, TypeChain, c.TypeName())

		rep, err := Resolve(ctx, c, dep("latest.integration"), DownloadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "2.0", rep.Resolved.Revision)
		assert.Equal(t, "second", rep.ResolverName)
		assert.Equal(t, report.StatusSuccessful, rep.Artifacts[0].DownloadStatus())
	})

	t.Run("return first", func(t *testing.T) {
		c := NewChain("first-wins", s, true, first, second)
		rr, err := c.ResolveRevision(ctx, dep("latest.integration"))
		require.NoError(t, err)
		assert.Equal(t, "1.1", rr.ID.Revision)
		assert.Equal(t, "first", rr.Resolver.Name())
	})

	t.Run("static revision found further down", func(t *testing.T) {
		c := NewChain("first-wins", s, true, first, second)
		rr, err := c.ResolveRevision(ctx, dep("2.0"))
		require.NoError(t, err)
		assert.Equal(t, "second", rr.Resolver.Name())
	})

	t.Run("not found", func(t *testing.T) {
		c := NewChain("all", s, false, first, second)
		_, err := c.ResolveRevision(ctx, dep("3.0"))
		assert.True(t, resolutionerrors.HasCode(err, resolutionerrors.RevisionNotFound), err)
	})

	t.Run("revisions", func(t *testing.T) {
		c := NewChain("all", s, false, second, first)
		revs, err := c.ListRevisions(ctx, widget)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.0", "1.1", "2.0"}, revs)
	})
}

func TestChainSurfacesUnreachable(t *testing.T) {
	ctx := testutil.Context(t)
	s := testutil.Settings(t)
	s.Offline = true
	remote := withRevisions("1.0")
	remote.networked = true

	c := NewChain("all", s, false, NewFileSystem("empty", withRevisions(), s), NewFileSystem("remote", remote, s))
	_, err := c.ResolveRevision(ctx, dep("1.0"))
	assert.True(t, resolutionerrors.HasCode(err, resolutionerrors.RepositoryUnreachable), err)
}

func TestChainOfUnreachableResolvers(t *testing.T) {
	ctx := testutil.Context(t)
	s := testutil.Settings(t)
	s.Offline = true
	east, west := withRevisions("1.0"), withRevisions("1.0")
	east.name, west.name = "east", "west"
	east.networked, west.networked = true, true

	c := NewChain("mirrors", s, false, NewFileSystem("east", east, s), NewFileSystem("west", west, s))
	_, err := c.ResolveRevision(ctx, dep("1.0"))
	assert.True(t, resolutionerrors.HasCode(err, resolutionerrors.RepositoryUnreachable), err)
	assert.False(t, resolutionerrors.HasCode(err, resolutionerrors.RevisionNotFound), err)
	assert.ErrorContains(t, err, "east")
	assert.ErrorContains(t, err, "west")
}

func TestChainDownloadFallsBack(t *testing.T) {
	ctx := testutil.Context(t)
	s := testutil.Settings(t)
	c := NewChain("all", s, false,
		NewFileSystem("first", withRevisions("1.0"), s),
		NewFileSystem("second", withRevisions("2.0"), s),
	)

	reports := c.Download(ctx, []*module.Artifact{
		module.DefaultArtifact(widget.WithRevision("2.0")),
		module.DefaultArtifact(widget.WithRevision("1.0")),
		module.DefaultArtifact(widget.WithRevision("9.9")),
	}, DownloadOptions{})
	require.Len(t, reports, 3)
	assert.Equal(t, report.StatusSuccessful, reports[0].DownloadStatus())
	assert.Equal(t, "2.0", reports[0].Artifact().ModuleRevisionID().Revision)
	assert.Equal(t, report.StatusSuccessful, reports[1].DownloadStatus())
	assert.Equal(t, report.StatusFailed, reports[2].DownloadStatus())
	assert.Equal(t, "9.9", reports[2].Artifact().ModuleRevisionID().Revision)
}
