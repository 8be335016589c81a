// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolver turns dependencies into resolved revisions and downloaded artifacts.
//
// The algorithm lives in RepositoryResolver; FileSystem, OCI and Git only bring their Repository
// and type name. Chain asks several resolvers in turn.
package resolver

import (
	"context"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/report"
)

const (
	TypeFile  = "file"
	TypeOCI   = "oci"
	TypeGit   = "git"
	TypeChain = "chain"
)

type Resolver interface {
	Name() string
	// TypeName identifies the kind of resolver, as used in configuration
	TypeName() string

	ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error)

	// ResolveRevision picks the revision satisfying dep.
	// It fails with a resolutionerrors.ResolutionError: REVISION_NOT_FOUND, DESCRIPTOR_FETCH_FAILED
	// or REPOSITORY_UNREACHABLE.
	ResolveRevision(ctx context.Context, dep *module.Dependency) (*ResolvedRevision, error)

	// Download returns exactly one report per artifact, in the same order.
	// Failures are reported, never returned.
	Download(ctx context.Context, artifacts []*module.Artifact, opts DownloadOptions) []*report.ArtifactDownloadReport
}

// ResolvedRevision is the outcome of ResolveRevision
type ResolvedRevision struct {
	ID module.RevisionID
	// nil when the revision has no descriptor
	Descriptor *module.Descriptor
	// the resolver which found the revision, and is able to download its artifacts
	Resolver Resolver
}

// Cache decides which artifacts need no transfer
type Cache interface {
	Satisfied(a *module.Artifact) bool
}

type DownloadOptions struct {
	// when nil, every artifact is fetched
	Cache Cache
}

// SelectArtifacts returns the artifacts to download for dep: the ones it asks for,
// else the ones declared by the resolved descriptor, else the module's default artifact
func SelectArtifacts(dep *module.Dependency, resolved *ResolvedRevision) []*module.Artifact {
	if len(dep.Artifacts) > 0 {
		return dep.Materialize(resolved.ID)
	}
	if resolved.Descriptor != nil && len(resolved.Descriptor.Artifacts) > 0 {
		return resolved.Descriptor.Artifacts
	}
	return []*module.Artifact{module.DefaultArtifact(resolved.ID)}
}

// Resolve resolves dep's revision with r, then downloads its artifacts with the resolver that found it
func Resolve(ctx context.Context, r Resolver, dep *module.Dependency, opts DownloadOptions) (*report.ResolveReport, error) {
	resolved, err := r.ResolveRevision(ctx, dep)
	if err != nil {
		return nil, err
	}

	artifacts := SelectArtifacts(dep, resolved)
	return &report.ResolveReport{
		Asked:        dep.Asked,
		Resolved:     resolved.ID,
		ResolverName: resolved.Resolver.Name(),
		Artifacts:    resolved.Resolver.Download(ctx, artifacts, opts),
	}, nil
}
