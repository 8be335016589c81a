// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
	"github.com/Masterminds/semver/v3"
)

// Candidate is a found revision, with its descriptor when one was fetched
type Candidate struct {
	ID         module.RevisionID
	Descriptor *module.Descriptor
}

// CandidateComparator is a total order on candidates; the greatest candidate wins
type CandidateComparator func(a, b Candidate) int

// OrderedMatcher is implemented by matchers which rank accepted candidates their own way.
// A nil CandidateComparator means the matcher has no preference.
type OrderedMatcher interface {
	Ordering(asked module.RevisionID) CandidateComparator
}

// OrderingFor is the one place deciding how accepted candidates are ranked:
// the matcher's own ordering if it has one, ByRevision otherwise
func OrderingFor(m VersionMatcher, asked module.RevisionID) CandidateComparator {
	if om, ok := m.(OrderedMatcher); ok {
		if c := om.Ordering(asked); c != nil {
			return c
		}
	}
	return ByRevision
}

func ByRevision(a, b Candidate) int {
	return StaticComparator(a.ID.Revision, b.ID.Revision)
}

func ByLexico(a, b Candidate) int {
	return strings.Compare(a.ID.Revision, b.ID.Revision)
}

// ByTime ranks by descriptor publication date. Candidates without a descriptor or date are the oldest.
// Equal dates fall back to ByRevision
func ByTime(a, b Candidate) int {
	if c := publication(a).Compare(publication(b)); c != 0 {
		return c
	}
	return ByRevision(a, b)
}

func publication(c Candidate) time.Time {
	if c.Descriptor == nil {
		return time.Time{}
	}
	return c.Descriptor.PublicationDate
}

// BySemver ranks by semantic version precedence, falling back to ByRevision for equal precedence
// (e.g. 1.2 and 1.2.0) or non-semver revisions
func BySemver(a, b Candidate) int {
	va, errA := semver.NewVersion(a.ID.Revision)
	vb, errB := semver.NewVersion(b.ID.Revision)
	if errA == nil && errB == nil {
		if c := va.Compare(vb); c != 0 {
			return c
		}
	}
	return ByRevision(a, b)
}

// StrategyOrdering maps a settings latest strategy to its ordering
func StrategyOrdering(strategy string) (CandidateComparator, error) {
	switch strategy {
	case settings.LatestRevision, "":
		return ByRevision, nil
	case settings.LatestTime:
		return ByTime, nil
	case settings.LatestLexico:
		return ByLexico, nil
	default:
		return nil, fmt.Errorf("unknown latest strategy %q", strategy)
	}
}

// Max returns the greatest candidate according to cmp
func Max(candidates []Candidate, cmp CandidateComparator) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return slices.MaxFunc(candidates, cmp), true
}
