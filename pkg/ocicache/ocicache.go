// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocicache puts an oci-layout directory in front of a read-only target.
// Content is addressed by digest, so cached blobs never go stale; references are always resolved by the source.
package ocicache

import (
	"context"
	"errors"
	"io"
	"log/slog"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/errdef"
)

type Target struct {
	oras.ReadOnlyTarget
	cache content.Storage
}

var _ oras.ReadOnlyTarget = (*Target)(nil)

func CachedTarget(src oras.ReadOnlyTarget, ociLayoutCache string) (*Target, error) {
	store, err := oci.New(ociLayoutCache)
	if err != nil {
		return nil, err
	}
	return New(src, store), nil
}

func New(src oras.ReadOnlyTarget, cache content.Storage) *Target {
	return &Target{ReadOnlyTarget: src, cache: cache}
}

// Fetch serves desc from the cache, filling it from the source first when needed.
// Content from the source is verified against desc before it's cached.
func (t *Target) Fetch(ctx context.Context, desc ocispec.Descriptor) (io.ReadCloser, error) {
	if rc, err := t.cache.Fetch(ctx, desc); err == nil {
		slog.Debug("oci cache hit", "digest", desc.Digest.String())
		return rc, nil
	}

	rc, err := t.ReadOnlyTarget.Fetch(ctx, desc)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	if err := t.cache.Push(ctx, desc, rc); err != nil && !errors.Is(err, errdef.ErrAlreadyExists) {
		return nil, err
	}
	return t.cache.Fetch(ctx, desc)
}

func (t *Target) Exists(ctx context.Context, desc ocispec.Descriptor) (bool, error) {
	if exists, err := t.cache.Exists(ctx, desc); err == nil && exists {
		return true, nil
	}
	return t.ReadOnlyTarget.Exists(ctx, desc)
}
