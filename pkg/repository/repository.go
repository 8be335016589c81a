// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package repository defines the storage capability resolvers are built on.
package repository

import (
	"context"
	"errors"

	"daml.com/x/depres/pkg/module"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrUnsupportedOperation = errors.New("operation not supported by repository")
	ErrUnreachable          = errors.New("repository unreachable")
)

// Resource is an artifact materialized on the local filesystem
type Resource struct {
	// where the content came from (a path, or a URL)
	Location string
	// file holding the content
	Path string
	Size int64
	// true when Path is the repository's own file rather than a copy
	Local bool
}

// Repository is where module revisions are stored.
// Implementations must document whether they tolerate concurrent calls.
type Repository interface {
	Name() string

	// ListRevisions returns the revisions available for mid, in no particular order.
	// A module the repository doesn't know about has no revisions.
	ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error)

	// FetchDescriptor returns the raw descriptor of mrid, or ErrNotFound
	FetchDescriptor(ctx context.Context, mrid module.RevisionID) ([]byte, error)

	// FetchArtifact materializes artifact. Repositories that copy content write it to dst;
	// local ones may return their own file instead.
	FetchArtifact(ctx context.Context, artifact *module.Artifact, dst string) (*Resource, error)
}

// Locality is implemented by repositories with a notion of being local or remote
type Locality interface {
	IsLocal() bool
	SetLocal(local bool)
}

// Networked is implemented by repositories which may need the network
type Networked interface {
	Networked() bool
}

// IsNetworked reports whether using r may require network access
func IsNetworked(r Repository) bool {
	n, ok := r.(Networked)
	return ok && n.Networked()
}
