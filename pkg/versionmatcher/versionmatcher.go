// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package versionmatcher decides whether a revision found in a repository satisfies the revision asked for.
//
// Matchers are configured once (name, settings) and are then read-only:
// they can be shared by concurrent resolutions without locking.
package versionmatcher

import (
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/revision"
	"daml.com/x/depres/pkg/settings"
)

// Comparator is a static order on revision strings
type Comparator func(a, b string) int

// StaticComparator is the order used whenever two concrete revisions need ranking
var StaticComparator Comparator = revision.Compare

type VersionMatcher interface {
	Name() string

	// IsDynamic reports whether asked designates possibly many revisions, i.e. is handled by this matcher
	IsDynamic(asked module.RevisionID) bool

	Accept(asked, found module.RevisionID) bool

	// NeedModuleDescriptor reports whether Accept can't be decided without the found revision's descriptor.
	// When true, callers must fetch the descriptor and use AcceptDescriptor instead.
	NeedModuleDescriptor(asked, found module.RevisionID) bool

	// Compare orders a dynamic asked revision against a static found one:
	// positive when asked is considered greater than found.
	Compare(asked, found module.RevisionID, static Comparator) int
}

// DescriptorAcceptor is implemented by matchers whose acceptance depends on descriptor metadata
type DescriptorAcceptor interface {
	AcceptDescriptor(asked module.RevisionID, found *module.Descriptor) bool
}

// AcceptDescriptor decides acceptance given the full descriptor of the found revision.
// Matchers that don't implement DescriptorAcceptor are asked about the descriptor's resolved id,
// so both entry points always agree for the same effective revision.
func AcceptDescriptor(m VersionMatcher, asked module.RevisionID, found *module.Descriptor) bool {
	if da, ok := m.(DescriptorAcceptor); ok {
		return da.AcceptDescriptor(asked, found)
	}
	return m.Accept(asked, found.ResolvedModuleRevisionID)
}

// Base carries the configuration common to all matchers
type Base struct {
	name     string
	settings *settings.Settings
}

type Option func(*Base)

func WithName(name string) Option {
	return func(b *Base) {
		b.name = name
	}
}

func newBase(name string, s *settings.Settings, opts []Option) Base {
	b := Base{name: name, settings: s}
	for _, o := range opts {
		o(&b)
	}
	return b
}

func (b *Base) Name() string                 { return b.name }
func (b *Base) String() string               { return b.name }
func (b *Base) Settings() *settings.Settings { return b.settings }

func (b *Base) NeedModuleDescriptor(_, _ module.RevisionID) bool {
	return false
}

func sameModule(asked, found module.RevisionID) bool {
	return asked.Organisation == found.Organisation && asked.Name == found.Name
}
