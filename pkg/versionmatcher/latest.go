// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"log/slog"
	"strings"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
)

const (
	LatestName   = "latest"
	LatestPrefix = "latest."
)

// Latest handles "latest.<status>": the most recent revision whose status is at least as mature as <status>.
// Which revision is the most recent is decided by the settings' latest strategy.
type Latest struct {
	Base
}

var (
	_ VersionMatcher     = (*Latest)(nil)
	_ DescriptorAcceptor = (*Latest)(nil)
	_ OrderedMatcher     = (*Latest)(nil)
)

// NewLatest requires settings, for statuses and the latest strategy
func NewLatest(s *settings.Settings, opts ...Option) *Latest {
	return &Latest{Base: newBase(LatestName, s, opts)}
}

func askedStatus(asked module.RevisionID) string {
	return strings.TrimPrefix(asked.Revision, LatestPrefix)
}

func (m *Latest) IsDynamic(asked module.RevisionID) bool {
	return strings.HasPrefix(asked.Revision, LatestPrefix)
}

// Accept accepts every revision of the module, ranking is left to the ordering
func (m *Latest) Accept(asked, found module.RevisionID) bool {
	return sameModule(asked, found)
}

// NeedModuleDescriptor is only false for the least mature status, when ranking doesn't rely on publication dates
func (m *Latest) NeedModuleDescriptor(asked, _ module.RevisionID) bool {
	return m.settings.LatestStrategy == settings.LatestTime ||
		askedStatus(asked) != m.settings.LeastMatureStatus()
}

func (m *Latest) AcceptDescriptor(asked module.RevisionID, found *module.Descriptor) bool {
	if !m.Accept(asked, found.ResolvedModuleRevisionID) {
		return false
	}
	want, ok := m.settings.StatusPriority(askedStatus(asked))
	if !ok {
		slog.Warn("unknown status asked for", "module", asked.String(), "status", askedStatus(asked))
		return false
	}
	got, ok := m.settings.StatusPriority(found.Status)
	if !ok {
		slog.Debug("descriptor has unknown status", "module", found.ResolvedModuleRevisionID.String(), "status", found.Status)
		return false
	}
	return got <= want
}

// Compare considers latest greater than any concrete revision
func (m *Latest) Compare(_, _ module.RevisionID, _ Comparator) int {
	return 1
}

func (m *Latest) Ordering(module.RevisionID) CandidateComparator {
	c, err := StrategyOrdering(m.settings.LatestStrategy)
	if err != nil {
		return nil
	}
	return c
}
