// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package gitrepo

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/testutil"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo commits one tree per revision of acme#widget and tags it
func initRepo(t *testing.T, revisions ...string) string {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)

	for _, rev := range revisions {
		testutil.WriteFile(t, filepath.Join(dir, "acme", "widget", "ivy.yaml"), []byte("descriptor "+rev))
		testutil.WriteFile(t, filepath.Join(dir, "acme", "widget", "widget.jar"), []byte("jar "+rev))
		_, err = w.Add("acme")
		require.NoError(t, err)
		h, err := w.Commit("widget "+rev, &git.CommitOptions{
			Author: &object.Signature{Name: "depres", Email: "depres@example.com", When: time.Now()},
		})
		require.NoError(t, err)
		_, err = repo.CreateTag("acme/widget/"+rev, h, nil)
		require.NoError(t, err)
	}
	return dir
}

func TestLocalWorkingCopy(t *testing.T) {
	ctx := testutil.Context(t)
	dir := initRepo(t, "1.0", "1.2", "1.3")
	r := New(dir)
	assert.False(t, repository.IsNetworked(r))

	mid := module.NewModuleID("acme", "widget")
	revs, err := r.ListRevisions(ctx, mid)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "1.2", "1.3"}, revs)

	revs, err = r.ListRevisions(ctx, module.NewModuleID("acme", "gadget"))
	require.NoError(t, err)
	assert.Empty(t, revs)

	// the descriptor is read from the tagged tree, not the working copy
	d, err := r.FetchDescriptor(ctx, mid.WithRevision("1.2"))
	require.NoError(t, err)
	assert.Equal(t, "descriptor 1.2", string(d))

	dst := filepath.Join(t.TempDir(), "widget.jar")
	res, err := r.FetchArtifact(ctx, module.DefaultArtifact(mid.WithRevision("1.0")), dst)
	require.NoError(t, err)
	assert.EqualValues(t, len("jar 1.0"), res.Size)
	assert.Contains(t, res.Location, "@acme/widget/1.0:acme/widget/widget.jar")
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jar 1.0", string(b))

	_, err = r.FetchDescriptor(ctx, mid.WithRevision("9.9"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.FetchArtifact(ctx, module.NewArtifact(mid.WithRevision("1.0"), "missing", "jar", "jar", nil), dst)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClone(t *testing.T) {
	ctx := testutil.Context(t)
	dir := initRepo(t, "2.0")
	r := New("file://" + filepath.ToSlash(dir))
	assert.True(t, repository.IsNetworked(r))

	revs, err := r.ListRevisions(ctx, module.NewModuleID("acme", "widget"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2.0"}, revs)
}

func TestUnreachable(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := r.ListRevisions(testutil.Context(t), module.NewModuleID("acme", "widget"))
	assert.ErrorIs(t, err, repository.ErrUnreachable)
}

func TestConcurrentFetches(t *testing.T) {
	ctx := testutil.Context(t)
	r := New(initRepo(t, "1.0"))
	mrid := module.NewRevisionID("acme", "widget", "1.0")
	out := t.TempDir()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.FetchArtifact(ctx, module.DefaultArtifact(mrid), filepath.Join(out, string(rune('a'+i))+".jar"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
