// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"fmt"
	"strings"
)

// ModuleID identifies a module regardless of its revision
type ModuleID struct {
	Organisation string `yaml:"organisation" json:"organisation"`
	Name         string `yaml:"name" json:"name"`
}

func NewModuleID(organisation, name string) ModuleID {
	return ModuleID{Organisation: organisation, Name: name}
}

func (m ModuleID) String() string {
	return m.Organisation + "#" + m.Name
}

func (m ModuleID) WithRevision(revision string) RevisionID {
	return NewRevisionID(m.Organisation, m.Name, revision)
}

// RevisionID identifies one revision of a module.
// It is used both for the revision asked for by a dependency and for the revisions found in a repository.
// Being a comparable value type, it can be used as a map key.
type RevisionID struct {
	Organisation string `yaml:"organisation" json:"organisation"`
	Name         string `yaml:"name" json:"name"`
	Revision     string `yaml:"revision" json:"revision"`
}

func NewRevisionID(organisation, name, revision string) RevisionID {
	return RevisionID{Organisation: organisation, Name: name, Revision: revision}
}

func (m RevisionID) ModuleID() ModuleID {
	return ModuleID{Organisation: m.Organisation, Name: m.Name}
}

// WithRevision returns a copy of m pointing at another revision of the same module
func (m RevisionID) WithRevision(revision string) RevisionID {
	m.Revision = revision
	return m
}

func (m RevisionID) String() string {
	return m.Organisation + "#" + m.Name + ";" + m.Revision
}

// ParseModuleID parses the "<organisation>#<name>" form
func ParseModuleID(s string) (ModuleID, error) {
	org, name, ok := strings.Cut(s, "#")
	if !ok || org == "" || name == "" {
		return ModuleID{}, fmt.Errorf("invalid module id %q. Must be of the form '<organisation>#<name>'", s)
	}
	return NewModuleID(org, name), nil
}

// ParseRevisionID parses the "<organisation>#<name>;<revision>" form
func ParseRevisionID(s string) (RevisionID, error) {
	mid, revision, ok := strings.Cut(s, ";")
	if !ok || revision == "" {
		return RevisionID{}, fmt.Errorf("invalid module revision id %q. Must be of the form '<organisation>#<name>;<revision>'", s)
	}
	m, err := ParseModuleID(mid)
	if err != nil {
		return RevisionID{}, err
	}
	return NewRevisionID(m.Organisation, m.Name, revision), nil
}
