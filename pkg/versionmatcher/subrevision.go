// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"strings"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
)

const SubRevisionName = "sub-revision"

// SubRevision handles "1.2+": any revision starting with "1.2"
type SubRevision struct {
	Base
}

var _ VersionMatcher = (*SubRevision)(nil)

func NewSubRevision(s *settings.Settings, opts ...Option) *SubRevision {
	return &SubRevision{Base: newBase(SubRevisionName, s, opts)}
}

func (m *SubRevision) IsDynamic(asked module.RevisionID) bool {
	return strings.HasSuffix(asked.Revision, "+")
}

func prefix(asked module.RevisionID) string {
	return strings.TrimSuffix(asked.Revision, "+")
}

func (m *SubRevision) Accept(asked, found module.RevisionID) bool {
	return sameModule(asked, found) && strings.HasPrefix(found.Revision, prefix(asked))
}

func (m *SubRevision) Compare(asked, found module.RevisionID, static Comparator) int {
	if strings.HasPrefix(found.Revision, prefix(asked)) {
		return 1
	}
	return static(prefix(asked), found.Revision)
}
