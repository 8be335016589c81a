// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package filerepo is a Repository laid out on a filesystem according to patterns.
//
// Calls don't share mutable state (locality aside, which is atomic), so a Repository
// can serve concurrent fetches.
package filerepo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/pattern"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/utils"
)

// ChecksumExt is the extension of the sidecar file holding an artifact's sha256
const ChecksumExt = ".sha256"

type Repository struct {
	root            string
	ivyPattern      string
	artifactPattern string
	local           atomic.Bool
}

var (
	_ repository.Repository = (*Repository)(nil)
	_ repository.Locality   = (*Repository)(nil)
)

type Option func(*Repository)

func WithIvyPattern(p string) Option {
	return func(r *Repository) { r.ivyPattern = p }
}

func WithArtifactPattern(p string) Option {
	return func(r *Repository) { r.artifactPattern = p }
}

func WithLocal(local bool) Option {
	return func(r *Repository) { r.local.Store(local) }
}

// New returns a local repository rooted at root, using the default patterns unless overridden
func New(root string, opts ...Option) *Repository {
	r := &Repository{
		root:            root,
		ivyPattern:      settings.DefaultIvyPattern,
		artifactPattern: settings.DefaultArtifactPattern,
	}
	r.local.Store(true)
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Repository) Name() string {
	return "file:" + r.root
}

func (r *Repository) Root() string { return r.root }

func (r *Repository) IsLocal() bool {
	return r.local.Load()
}

func (r *Repository) SetLocal(local bool) {
	r.local.Store(local)
}

func (r *Repository) ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pattern.ListValues(r.root, r.ivyPattern, pattern.Revision, pattern.ModuleTokens(mid))
}

func (r *Repository) DescriptorPath(mrid module.RevisionID) string {
	return r.path(r.ivyPattern, pattern.RevisionTokens(mrid))
}

func (r *Repository) ArtifactPath(a *module.Artifact) string {
	return r.path(r.artifactPattern, pattern.ArtifactTokens(a))
}

func (r *Repository) path(p string, tokens map[string]string) string {
	return filepath.Join(r.root, filepath.FromSlash(pattern.Substitute(p, tokens)))
}

func (r *Repository) FetchDescriptor(ctx context.Context, mrid module.RevisionID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := r.DescriptorPath(mrid)
	b, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("descriptor %s: %w", p, repository.ErrNotFound)
	}
	return b, err
}

// FetchArtifact verifies the artifact against its sha256 sidecar, if any.
// A local repository hands out its own file, a non-local one copies it to dst.
func (r *Repository) FetchArtifact(ctx context.Context, a *module.Artifact, dst string) (*repository.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := r.ArtifactPath(a)
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("artifact %s: %w", src, repository.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	if err := verifyChecksum(src); err != nil {
		return nil, err
	}

	if r.IsLocal() {
		return &repository.Resource{Location: src, Path: src, Size: info.Size(), Local: true}, nil
	}

	slog.Debug("copying artifact", "src", src, "dst", dst)
	n, err := utils.CopyFile(src, dst)
	if err != nil {
		return nil, err
	}
	return &repository.Resource{Location: src, Path: dst, Size: n}, nil
}

func verifyChecksum(path string) error {
	expected, err := os.ReadFile(path + ChecksumExt)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	fields := strings.Fields(string(expected))
	if len(fields) == 0 {
		return fmt.Errorf("%s: empty checksum file: %w", path, repository.ErrChecksumMismatch)
	}
	want := strings.ToLower(fields[0])

	got, err := Sha256(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s: expected sha256 %s, got %s: %w", path, want, got, repository.ErrChecksumMismatch)
	}
	return nil
}

// Sha256 returns the hex encoded sha256 of a file's content
func Sha256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
