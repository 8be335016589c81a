// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
	"github.com/Masterminds/semver/v3"
)

const SemverName = "semver"

// Semver handles semantic version constraints such as "~1.2", "^1.0" or ">= 1.0, < 2.0".
// Found revisions that aren't semantic versions are never accepted.
type Semver struct {
	Base
}

var (
	_ VersionMatcher = (*Semver)(nil)
	_ OrderedMatcher = (*Semver)(nil)
)

func NewSemver(s *settings.Settings, opts ...Option) *Semver {
	return &Semver{Base: newBase(SemverName, s, opts)}
}

// IsDynamic holds for parseable constraints which aren't plain versions
func (m *Semver) IsDynamic(asked module.RevisionID) bool {
	if _, err := semver.NewVersion(asked.Revision); err == nil {
		return false
	}
	if _, err := ParseBounds(asked.Revision); err == nil {
		return false
	}
	_, err := semver.NewConstraint(asked.Revision)
	return err == nil
}

func (m *Semver) Accept(asked, found module.RevisionID) bool {
	if !sameModule(asked, found) {
		return false
	}
	c, err := semver.NewConstraint(asked.Revision)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(found.Revision)
	if err != nil {
		return false
	}
	return c.Check(v)
}

func (m *Semver) Compare(asked, found module.RevisionID, static Comparator) int {
	if m.Accept(asked, found) {
		return 1
	}
	return static(asked.Revision, found.Revision)
}

// Ordering ranks accepted candidates by semantic version precedence
func (m *Semver) Ordering(module.RevisionID) CandidateComparator {
	return BySemver
}
