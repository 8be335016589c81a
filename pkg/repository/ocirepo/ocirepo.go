// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocirepo is a Repository backed by an OCI registry.
//
// Module "org#name" lives in repository "org/name", one tag per revision.
// Each tag points at an image manifest whose layers are the module descriptor
// and the artifacts, the latter named by their title annotation.
//
// The registry client and the blob cache are safe for concurrent use, so a Repository
// can serve concurrent fetches.
package ocirepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/ocicache"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/utils"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/samber/lo"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/errdef"
	"oras.land/oras-go/v2/registry/remote/errcode"
)

const (
	ArtifactType           = "application/vnd.daml.depres.module.v1"
	DescriptorMediaType    = "application/vnd.daml.depres.descriptor.v1+yaml"
	ArtifactLayerMediaType = "application/vnd.daml.depres.artifact.v1"
)

type Repository struct {
	remote   *Remote
	ociCache string
}

var (
	_ repository.Repository = (*Repository)(nil)
	_ repository.Networked  = (*Repository)(nil)
)

// New returns a repository reading from remote, caching blobs in the ociCache oci-layout dir
func New(remote *Remote, ociCache string) *Repository {
	return &Repository{remote: remote, ociCache: ociCache}
}

func (r *Repository) Name() string {
	return "oci:" + r.remote.Registry
}

func (r *Repository) Remote() *Remote {
	return r.remote
}

func (r *Repository) Networked() bool {
	return true
}

func RepoName(mid module.ModuleID) string {
	return mid.Organisation + "/" + mid.Name
}

func (r *Repository) ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error) {
	repo, err := r.remote.Repo(RepoName(mid))
	if err != nil {
		return nil, err
	}

	var result []string
	err = repo.Tags(ctx, "", func(tags []string) error {
		result = append(result, tags...)
		return nil
	})
	if isErrorCode(err, errcode.ErrorCodeNameUnknown) {
		// repo doesn't even exist...
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrUnreachable, err)
	}
	return result, nil
}

func (r *Repository) target(mid module.ModuleID) (oras.ReadOnlyTarget, error) {
	repo, err := r.remote.Repo(RepoName(mid))
	if err != nil {
		return nil, err
	}
	return ocicache.CachedTarget(repo, r.ociCache)
}

func (r *Repository) manifest(ctx context.Context, mrid module.RevisionID) (oras.ReadOnlyTarget, *ocispec.Manifest, error) {
	target, err := r.target(mrid.ModuleID())
	if err != nil {
		return nil, nil, err
	}
	_, b, err := oras.FetchBytes(ctx, target, mrid.Revision, oras.DefaultFetchBytesOptions)
	if err != nil {
		return nil, nil, notFound(err, mrid.String())
	}

	var m ocispec.Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, nil, fmt.Errorf("invalid manifest for %s: %w", mrid, err)
	}
	return target, &m, nil
}

func (r *Repository) FetchDescriptor(ctx context.Context, mrid module.RevisionID) ([]byte, error) {
	target, m, err := r.manifest(ctx, mrid)
	if err != nil {
		return nil, err
	}
	layer, ok := lo.Find(m.Layers, func(l ocispec.Descriptor) bool {
		return l.MediaType == DescriptorMediaType
	})
	if !ok {
		return nil, fmt.Errorf("no descriptor layer in %s: %w", mrid, repository.ErrNotFound)
	}
	return content.FetchAll(ctx, target, layer)
}

// FetchArtifact downloads the layer titled with the artifact's file name to dst
func (r *Repository) FetchArtifact(ctx context.Context, a *module.Artifact, dst string) (*repository.Resource, error) {
	mrid := a.ModuleRevisionID()
	target, m, err := r.manifest(ctx, mrid)
	if err != nil {
		return nil, err
	}
	layer, ok := lo.Find(m.Layers, func(l ocispec.Descriptor) bool {
		return l.Annotations[ocispec.AnnotationTitle] == a.FileName()
	})
	if !ok {
		return nil, fmt.Errorf("no layer titled %s in %s: %w", a.FileName(), mrid, repository.ErrNotFound)
	}

	rc, err := target.Fetch(ctx, layer)
	if err != nil {
		return nil, wrapMismatch(err)
	}
	defer func() { _ = rc.Close() }()

	vr := content.NewVerifyReader(rc, layer)
	n, err := utils.WriteVerifiedFile(dst, vr, vr.Verify)
	if err != nil {
		return nil, wrapMismatch(err)
	}

	location := fmt.Sprintf("%s/%s@%s", r.remote.Registry, RepoName(mrid.ModuleID()), layer.Digest)
	slog.Debug("fetched artifact layer", "artifact", a.String(), "location", location)
	return &repository.Resource{Location: location, Path: dst, Size: n}, nil
}

func notFound(err error, what string) error {
	if errors.Is(err, errdef.ErrNotFound) ||
		isErrorCode(err, errcode.ErrorCodeNameUnknown) ||
		isErrorCode(err, errcode.ErrorCodeManifestUnknown) {
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	}
	return err
}

func wrapMismatch(err error) error {
	if errors.Is(err, content.ErrMismatchedDigest) || errors.Is(err, content.ErrTrailingData) {
		return fmt.Errorf("%w: %w", repository.ErrChecksumMismatch, err)
	}
	return err
}

// isErrorCode returns true if err is an oras Error and its Code equals to code.
func isErrorCode(err error, code string) bool {
	var ec errcode.Error
	return errors.As(err, &ec) && ec.Code == code
}
