// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/report"
	"daml.com/x/depres/pkg/resolutionerrors"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/versionmatcher"
	"github.com/samber/lo"
)

// Chain asks each of its resolvers in turn.
// With returnFirst the first revision found wins, otherwise the best of all found revisions,
// ranked the way a single resolver ranks its candidates.
type Chain struct {
	name        string
	resolvers   []Resolver
	returnFirst bool
	matcher     versionmatcher.VersionMatcher
}

var _ Resolver = (*Chain)(nil)

func NewChain(name string, s *settings.Settings, returnFirst bool, resolvers ...Resolver) *Chain {
	return &Chain{
		name:        name,
		resolvers:   resolvers,
		returnFirst: returnFirst,
		matcher:     versionmatcher.NewDefault(s),
	}
}

func (c *Chain) Name() string          { return c.name }
func (c *Chain) TypeName() string      { return TypeChain }
func (c *Chain) Resolvers() []Resolver { return slices.Clone(c.resolvers) }

// ListRevisions merges the revisions of all resolvers. Resolvers failing to list are skipped
// as long as one succeeds
func (c *Chain) ListRevisions(ctx context.Context, mid module.ModuleID) ([]string, error) {
	var all []string
	var errs []error
	for _, r := range c.resolvers {
		revs, err := r.ListRevisions(ctx, mid)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, revs...)
	}
	if len(errs) == len(c.resolvers) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	all = lo.Uniq(all)
	slices.SortFunc(all, versionmatcher.StaticComparator)
	return all, nil
}

// ResolveRevision fails with REVISION_NOT_FOUND unless another error explains why nothing was found
func (c *Chain) ResolveRevision(ctx context.Context, dep *module.Dependency) (*ResolvedRevision, error) {
	var found []*ResolvedRevision
	var errs []error
	for _, r := range c.resolvers {
		rr, err := r.ResolveRevision(ctx, dep)
		if err != nil {
			if !resolutionerrors.HasCode(err, resolutionerrors.RevisionNotFound) {
				slog.Warn("resolver failed", "chain", c.name, "resolver", r.Name(), "err", err.Error())
			}
			errs = append(errs, err)
			continue
		}
		if c.returnFirst {
			return rr, nil
		}
		found = append(found, rr)
	}

	if len(found) == 0 {
		return nil, c.notFound(dep.Asked, errs)
	}

	cmp := versionmatcher.OrderingFor(c.matcher, dep.Asked)
	return slices.MaxFunc(found, func(a, b *ResolvedRevision) int {
		return cmp(versionmatcher.Candidate{ID: a.ID, Descriptor: a.Descriptor}, versionmatcher.Candidate{ID: b.ID, Descriptor: b.Descriptor})
	}), nil
}

// notFound is REVISION_NOT_FOUND only when every child looked and found nothing.
// Otherwise the failures of the other children explain the outcome, under the first one's code.
func (c *Chain) notFound(asked module.RevisionID, errs []error) error {
	other := lo.Filter(errs, func(err error, _ int) bool {
		return !resolutionerrors.HasCode(err, resolutionerrors.RevisionNotFound)
	})
	if len(other) == 0 {
		return resolutionerrors.NewRevisionNotFoundError(asked, errors.Join(errs...))
	}
	if len(other) == 1 {
		return other[0]
	}
	return &resolutionerrors.ResolutionError{
		Code:   resolutionerrors.Standardize(other[0]).Code,
		Module: asked,
		Cause:  errors.Join(other...),
	}
}

// Download asks each resolver in turn for the artifacts still failing.
// Resolve downloads straight from the resolver that found the revision instead.
func (c *Chain) Download(ctx context.Context, artifacts []*module.Artifact, opts DownloadOptions) []*report.ArtifactDownloadReport {
	if len(c.resolvers) == 0 {
		return lo.Map(artifacts, func(a *module.Artifact, _ int) *report.ArtifactDownloadReport {
			return report.NewBuilder(a).Failed("chain " + c.name + " has no resolvers").Build()
		})
	}

	reports := make([]*report.ArtifactDownloadReport, len(artifacts))
	pending := lo.Range(len(artifacts))
	for _, r := range c.resolvers {
		batch := lo.Map(pending, func(i int, _ int) *module.Artifact {
			return artifacts[i]
		})
		got := r.Download(ctx, batch, opts)

		var failed []int
		for j, i := range pending {
			reports[i] = got[j]
			if got[j].DownloadStatus() == report.StatusFailed {
				failed = append(failed, i)
			}
		}
		if len(failed) == 0 {
			break
		}
		pending = failed
	}
	return reports
}
