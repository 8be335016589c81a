// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"daml.com/x/depres/pkg/artifactcache"
	"daml.com/x/depres/pkg/descriptor"
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/report"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/resolutionerrors"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/versionmatcher"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// RepositoryResolver resolves against a single Repository
type RepositoryResolver struct {
	name     string
	typeName string
	repo     repository.Repository
	settings *settings.Settings
	matcher  versionmatcher.VersionMatcher
	parser   descriptor.Parser
	store    *artifactcache.Cache
}

var _ Resolver = (*RepositoryResolver)(nil)

type Option func(*RepositoryResolver)

func WithMatcher(m versionmatcher.VersionMatcher) Option {
	return func(r *RepositoryResolver) { r.matcher = m }
}

func WithParser(p descriptor.Parser) Option {
	return func(r *RepositoryResolver) { r.parser = p }
}

// WithArtifactCache sets where artifacts of non-local repositories are stored
func WithArtifactCache(c *artifactcache.Cache) Option {
	return func(r *RepositoryResolver) { r.store = c }
}

func newRepositoryResolver(name, typeName string, repo repository.Repository, s *settings.Settings, opts []Option) *RepositoryResolver {
	r := &RepositoryResolver{
		name:     name,
		typeName: typeName,
		repo:     repo,
		settings: s,
		matcher:  versionmatcher.NewDefault(s),
		parser:   descriptor.YAML{},
		store:    artifactcache.FromSettings(s),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *RepositoryResolver) Name() string                           { return r.name }
func (r *RepositoryResolver) TypeName() string                       { return r.typeName }
func (r *RepositoryResolver) Repository() repository.Repository      { return r.repo }
func (r *RepositoryResolver) Matcher() versionmatcher.VersionMatcher { return r.matcher }

func (r *RepositoryResolver) String() string {
	return fmt.Sprintf("%s (%s, %s)", r.name, r.typeName, r.repo.Name())
}

// IsLocal passes through to the repository, failing when it has no notion of locality
func (r *RepositoryResolver) IsLocal() (bool, error) {
	l, ok := r.repo.(repository.Locality)
	if !ok {
		return false, r.unsupported("IsLocal")
	}
	return l.IsLocal(), nil
}

// SetLocal passes through to the repository, failing when it has no notion of locality
func (r *RepositoryResolver) SetLocal(local bool) error {
	l, ok := r.repo.(repository.Locality)
	if !ok {
		return r.unsupported("SetLocal")
	}
	l.SetLocal(local)
	return nil
}

func (r *RepositoryResolver) unsupported(op string) error {
	return resolutionerrors.NewUnsupportedOperationError(
		fmt.Errorf("%s on %s: %w", op, r.repo.Name(), repository.ErrUnsupportedOperation))
}

func (r *RepositoryResolver) offline() bool {
	return r.settings.Offline && repository.IsNetworked(r.repo)
}

func (r *RepositoryResolver) ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error) {
	if r.offline() {
		return nil, fmt.Errorf("%s is not available offline: %w", r.repo.Name(), repository.ErrUnreachable)
	}
	return r.repo.ListRevisions(ctx, mid)
}

func (r *RepositoryResolver) ResolveRevision(ctx context.Context, dep *module.Dependency) (*ResolvedRevision, error) {
	asked := dep.Asked

	revisions, err := r.ListRevisions(ctx, asked.ModuleID())
	if err != nil {
		return nil, resolutionerrors.NewRepositoryUnreachableError(asked, err)
	}

	var candidates []versionmatcher.Candidate
	var descriptorErrs []error
	for _, rev := range revisions {
		found := asked.ModuleID().WithRevision(rev)

		if !r.matcher.NeedModuleDescriptor(asked, found) {
			if r.matcher.Accept(asked, found) {
				candidates = append(candidates, versionmatcher.Candidate{ID: found})
			}
			continue
		}

		md, err := r.descriptor(ctx, found)
		if err != nil {
			slog.Warn("skipping revision whose descriptor couldn't be fetched", "resolver", r.name, "revision", found.String(), "err", err.Error())
			descriptorErrs = append(descriptorErrs, err)
			continue
		}
		if versionmatcher.AcceptDescriptor(r.matcher, asked, md) {
			candidates = append(candidates, versionmatcher.Candidate{ID: found, Descriptor: md})
		} else {
			slog.Debug("revision rejected", "resolver", r.name, "asked", asked.String(), "revision", rev, "status", md.Status)
		}
	}

	ordering := versionmatcher.OrderingFor(r.matcher, asked)
	for {
		winner, ok := versionmatcher.Max(candidates, ordering)
		if !ok {
			if len(descriptorErrs) > 0 {
				return nil, resolutionerrors.NewDescriptorFetchFailedError(asked, errors.Join(descriptorErrs...))
			}
			return nil, resolutionerrors.NewRevisionNotFoundError(asked, fmt.Errorf("%d revisions in %s", len(revisions), r.repo.Name()))
		}

		if winner.Descriptor == nil {
			md, err := r.descriptor(ctx, winner.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				slog.Warn("dropping selected revision whose descriptor couldn't be fetched", "resolver", r.name, "revision", winner.ID.String(), "err", err.Error())
				descriptorErrs = append(descriptorErrs, err)
				candidates = lo.Reject(candidates, func(c versionmatcher.Candidate, _ int) bool {
					return c.ID == winner.ID
				})
				continue
			}
			winner.Descriptor = md
		}

		slog.Info("resolved revision", "resolver", r.name, "asked", asked.String(), "revision", winner.ID.Revision)
		return &ResolvedRevision{ID: winner.ID, Descriptor: winner.Descriptor, Resolver: r}, nil
	}
}

func (r *RepositoryResolver) descriptor(ctx context.Context, mrid module.RevisionID) (*module.Descriptor, error) {
	b, err := r.repo.FetchDescriptor(ctx, mrid)
	if err != nil {
		return nil, err
	}
	md, err := r.parser.Parse(b)
	if err != nil {
		return nil, err
	}
	if md.ResolvedModuleRevisionID != mrid {
		return nil, fmt.Errorf("%w: descriptor of %s declares %s", descriptor.ErrInvalidDescriptor, mrid, md.ResolvedModuleRevisionID)
	}
	return md, nil
}

// Download fetches up to settings' DownloadParallelism artifacts at once
func (r *RepositoryResolver) Download(ctx context.Context, artifacts []*module.Artifact, opts DownloadOptions) []*report.ArtifactDownloadReport {
	reports := make([]*report.ArtifactDownloadReport, len(artifacts))

	var g errgroup.Group
	g.SetLimit(max(r.settings.DownloadParallelism, 1))
	for i, a := range artifacts {
		g.Go(func() error {
			reports[i] = r.download(ctx, a, opts)
			slog.Debug(reports[i].String())
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func (r *RepositoryResolver) download(ctx context.Context, a *module.Artifact, opts DownloadOptions) *report.ArtifactDownloadReport {
	b := report.NewBuilder(a)
	if opts.Cache != nil && opts.Cache.Satisfied(a) {
		return b.NotRequired().Build()
	}

	b.Start()
	if r.offline() {
		return b.Failed(fmt.Sprintf("%s is not available offline", r.repo.Name())).Build()
	}

	fetchCtx := ctx
	if r.settings.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.settings.FetchTimeout)
		defer cancel()
	}

	res, err := r.fetch(fetchCtx, a)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", r.settings.FetchTimeout, err)
		}
		return b.Failed(resolutionerrors.NewArtifactFetchFailedError(a.ModuleRevisionID(), err).Error()).Build()
	}
	return b.Succeeded(report.NewArtifactOrigin(res.Location, res.Local), res.Path, res.Size).Build()
}

func (r *RepositoryResolver) fetch(ctx context.Context, a *module.Artifact) (*repository.Resource, error) {
	if local, err := r.IsLocal(); err == nil && local {
		return r.repo.FetchArtifact(ctx, a, "")
	}
	return r.store.Fetch(ctx, a, func(dst string) (*repository.Resource, error) {
		return r.repo.FetchArtifact(ctx, a, dst)
	})
}
