// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
)

const ExactName = "exact"

// Exact accepts only the very revision asked for
type Exact struct {
	Base
}

var _ VersionMatcher = (*Exact)(nil)

func NewExact(s *settings.Settings, opts ...Option) *Exact {
	return &Exact{Base: newBase(ExactName, s, opts)}
}

func (m *Exact) IsDynamic(module.RevisionID) bool {
	return false
}

func (m *Exact) Accept(asked, found module.RevisionID) bool {
	return asked == found
}

func (m *Exact) Compare(asked, found module.RevisionID, static Comparator) int {
	return static(asked.Revision, found.Revision)
}
