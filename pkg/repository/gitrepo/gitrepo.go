// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package gitrepo is a Repository backed by a git repository.
//
// Each module revision is a tag, "[organisation]/[module]/[revision]" by default,
// and its descriptor and artifacts are files of the tagged tree.
// A remote url is cloned in memory on first use; a local working copy is opened in place.
//
// go-git's storage isn't safe for concurrent use, so every call holds the repository's lock.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/pattern"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/utils"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

const (
	DefaultTagPattern      = "[organisation]/[module]/[revision]"
	DefaultIvyPattern      = "[organisation]/[module]/ivy.yaml"
	DefaultArtifactPattern = "[organisation]/[module]/[artifact].[ext]"
)

type Repository struct {
	url             string
	tagPattern      string
	ivyPattern      string
	artifactPattern string

	mu   sync.Mutex
	repo *git.Repository
}

var (
	_ repository.Repository = (*Repository)(nil)
	_ repository.Networked  = (*Repository)(nil)
)

type Option func(*Repository)

func WithIvyPattern(p string) Option {
	return func(r *Repository) { r.ivyPattern = p }
}

func WithArtifactPattern(p string) Option {
	return func(r *Repository) { r.artifactPattern = p }
}

func WithTagPattern(p string) Option {
	return func(r *Repository) { r.tagPattern = p }
}

// New returns a repository for url, either a local working copy or anything go-git can clone
func New(url string, opts ...Option) *Repository {
	r := &Repository{
		url:             url,
		tagPattern:      DefaultTagPattern,
		ivyPattern:      DefaultIvyPattern,
		artifactPattern: DefaultArtifactPattern,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Repository) Name() string {
	return "git:" + r.url
}

// Networked is false for local working copies
func (r *Repository) Networked() bool {
	ok, err := utils.DirExists(r.url)
	return err != nil || !ok
}

// open must be called with mu held
func (r *Repository) open(ctx context.Context) (*git.Repository, error) {
	if r.repo != nil {
		return r.repo, nil
	}

	var repo *git.Repository
	var err error
	if !r.Networked() {
		repo, err = git.PlainOpen(r.url)
	} else {
		slog.Debug("cloning git repository", "url", r.url)
		repo, err = git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
			URL:  r.url,
			Tags: git.AllTags,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repository.ErrUnreachable, r.url, err)
	}
	r.repo = repo
	return repo, nil
}

func (r *Repository) ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	repo, err := r.open(ctx)
	if err != nil {
		return nil, err
	}

	prefix, suffix, ok := strings.Cut(pattern.Substitute(r.tagPattern, pattern.ModuleTokens(mid)), "["+pattern.Revision+"]")
	if !ok {
		return nil, fmt.Errorf("tag pattern %s doesn't contain [%s]", r.tagPattern, pattern.Revision)
	}

	tags, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	defer tags.Close()

	var revisions []string
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) || len(name) <= len(prefix)+len(suffix) {
			return nil
		}
		revisions = append(revisions, name[len(prefix):len(name)-len(suffix)])
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(revisions)
	return revisions, nil
}

// file looks up a file of the tree tagged for mrid. Must be called with mu held
func (r *Repository) file(ctx context.Context, mrid module.RevisionID, p string) (*object.File, string, error) {
	repo, err := r.open(ctx)
	if err != nil {
		return nil, "", err
	}

	tag := pattern.Substitute(r.tagPattern, pattern.RevisionTokens(mrid))
	hash, err := repo.ResolveRevision(plumbing.Revision(plumbing.NewTagReferenceName(tag)))
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, "", fmt.Errorf("tag %s: %w", tag, repository.ErrNotFound)
	} else if err != nil {
		return nil, "", err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, "", err
	}

	f, err := commit.File(path.Clean(p))
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, "", fmt.Errorf("%s@%s: %w", p, tag, repository.ErrNotFound)
	} else if err != nil {
		return nil, "", err
	}
	return f, fmt.Sprintf("%s@%s:%s", r.url, tag, p), nil
}

func (r *Repository) FetchDescriptor(ctx context.Context, mrid module.RevisionID) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, _, err := r.file(ctx, mrid, pattern.Substitute(r.ivyPattern, pattern.RevisionTokens(mrid)))
	if err != nil {
		return nil, err
	}
	rc, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Repository) FetchArtifact(ctx context.Context, a *module.Artifact, dst string) (*repository.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, location, err := r.file(ctx, a.ModuleRevisionID(), pattern.Substitute(r.artifactPattern, pattern.ArtifactTokens(a)))
	if err != nil {
		return nil, err
	}
	rc, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	n, err := utils.WriteFile(dst, rc)
	if err != nil {
		_ = os.Remove(dst)
		return nil, err
	}
	return &repository.Resource{Location: location, Path: dst, Size: n}, nil
}
