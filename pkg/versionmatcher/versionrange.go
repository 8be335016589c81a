// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versionmatcher

import (
	"fmt"
	"strings"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
)

const RangeName = "version-range"

// Range handles revision intervals:
//
//	[1.0,2.0]  1.0 <= r <= 2.0
//	]1.0,2.0]  1.0 <  r <= 2.0   (also written (1.0,2.0])
//	[1.0,2.0[  1.0 <= r <  2.0   (also written [1.0,2.0))
//	[1.0,)     1.0 <= r
//	(,2.0]     r <= 2.0
//
// Bounds are compared with StaticComparator.
type Range struct {
	Base
}

var _ VersionMatcher = (*Range)(nil)

func NewRange(s *settings.Settings, opts ...Option) *Range {
	return &Range{Base: newBase(RangeName, s, opts)}
}

// Bounds is a parsed revision interval. An empty bound is unbounded
type Bounds struct {
	Lower, Upper                   string
	LowerInclusive, UpperInclusive bool
}

func ParseBounds(r string) (*Bounds, error) {
	if len(r) < 3 {
		return nil, fmt.Errorf("%q is not a revision range", r)
	}
	open, close := r[0], r[len(r)-1]
	if !strings.ContainsRune("[](", rune(open)) || !strings.ContainsRune("[])", rune(close)) {
		return nil, fmt.Errorf("%q is not a revision range", r)
	}

	lower, upper, ok := strings.Cut(r[1:len(r)-1], ",")
	if !ok || strings.Contains(upper, ",") {
		return nil, fmt.Errorf("revision range %q must have exactly one ','", r)
	}
	b := &Bounds{
		Lower:          strings.TrimSpace(lower),
		Upper:          strings.TrimSpace(upper),
		LowerInclusive: open == '[',
		UpperInclusive: close == ']',
	}
	if b.Lower == "" && b.LowerInclusive {
		return nil, fmt.Errorf("revision range %q has an open lower bound, which must be written with '(' or ']'", r)
	}
	if b.Upper == "" && b.UpperInclusive {
		return nil, fmt.Errorf("revision range %q has an open upper bound, which must be written with ')' or '['", r)
	}
	if b.Lower == "" && b.Upper == "" {
		return nil, fmt.Errorf("revision range %q must have at least one bound", r)
	}
	return b, nil
}

// Contains reports whether r lies within the bounds
func (b *Bounds) Contains(r string, static Comparator) bool {
	if b.Lower != "" {
		c := static(r, b.Lower)
		if c < 0 || (c == 0 && !b.LowerInclusive) {
			return false
		}
	}
	if b.Upper != "" {
		c := static(r, b.Upper)
		if c > 0 || (c == 0 && !b.UpperInclusive) {
			return false
		}
	}
	return true
}

func (m *Range) IsDynamic(asked module.RevisionID) bool {
	_, err := ParseBounds(asked.Revision)
	return err == nil
}

func (m *Range) Accept(asked, found module.RevisionID) bool {
	if !sameModule(asked, found) {
		return false
	}
	b, err := ParseBounds(asked.Revision)
	if err != nil {
		return false
	}
	return b.Contains(found.Revision, StaticComparator)
}

// Compare considers the range greater than found unless found lies beyond its upper bound
func (m *Range) Compare(asked, found module.RevisionID, static Comparator) int {
	b, err := ParseBounds(asked.Revision)
	if err != nil || b.Upper == "" {
		return 1
	}
	c := static(b.Upper, found.Revision)
	if c == 0 && !b.UpperInclusive {
		return -1
	}
	return c
}
