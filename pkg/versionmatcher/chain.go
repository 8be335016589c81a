// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"slices"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
	"github.com/samber/lo"
)

const ChainName = "chain"

// Chain hands each asked revision to the first of its matchers for which it is dynamic,
// or to its exact matcher when none is
type Chain struct {
	Base
	matchers []VersionMatcher
	exact    VersionMatcher
}

var (
	_ VersionMatcher     = (*Chain)(nil)
	_ DescriptorAcceptor = (*Chain)(nil)
	_ OrderedMatcher     = (*Chain)(nil)
)

func NewChain(s *settings.Settings, matchers []VersionMatcher, opts ...Option) *Chain {
	return &Chain{
		Base:     newBase(ChainName, s, opts),
		matchers: matchers,
		exact:    NewExact(s),
	}
}

// NewDefault is the chain of every built-in matcher
func NewDefault(s *settings.Settings) *Chain {
	return NewChain(s, []VersionMatcher{
		NewLatest(s),
		NewSubRevision(s),
		NewRange(s),
		NewSemver(s),
	})
}

func (c *Chain) Matchers() []VersionMatcher {
	return append(slices.Clone(c.matchers), c.exact)
}

// Route returns the matcher in charge of asked
func (c *Chain) Route(asked module.RevisionID) VersionMatcher {
	m, ok := lo.Find(c.matchers, func(m VersionMatcher) bool {
		return m.IsDynamic(asked)
	})
	if !ok {
		return c.exact
	}
	return m
}

func (c *Chain) IsDynamic(asked module.RevisionID) bool {
	return c.Route(asked) != c.exact
}

func (c *Chain) Accept(asked, found module.RevisionID) bool {
	return c.Route(asked).Accept(asked, found)
}

func (c *Chain) NeedModuleDescriptor(asked, found module.RevisionID) bool {
	return c.Route(asked).NeedModuleDescriptor(asked, found)
}

func (c *Chain) AcceptDescriptor(asked module.RevisionID, found *module.Descriptor) bool {
	return AcceptDescriptor(c.Route(asked), asked, found)
}

func (c *Chain) Compare(asked, found module.RevisionID, static Comparator) int {
	return c.Route(asked).Compare(asked, found, static)
}

func (c *Chain) Ordering(asked module.RevisionID) CandidateComparator {
	return OrderingFor(c.Route(asked), asked)
}
