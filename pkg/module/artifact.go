// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"maps"
	"slices"
	"strings"
)

const (
	DefaultArtifactType = "jar"
	DefaultArtifactExt  = "jar"
)

// Artifact is one deliverable file of a module revision.
// Fields are unexported so that an Artifact can't change once constructed.
type Artifact struct {
	module     RevisionID
	name       string
	typ        string
	ext        string
	attributes map[string]string
}

func NewArtifact(module RevisionID, name, typ, ext string, extraAttributes map[string]string) *Artifact {
	return &Artifact{
		module:     module,
		name:       name,
		typ:        typ,
		ext:        ext,
		attributes: maps.Clone(extraAttributes),
	}
}

// DefaultArtifact is the artifact assumed for a module revision which doesn't declare any
func DefaultArtifact(module RevisionID) *Artifact {
	return NewArtifact(module, module.Name, DefaultArtifactType, DefaultArtifactExt, nil)
}

func (a *Artifact) ModuleRevisionID() RevisionID { return a.module }
func (a *Artifact) Name() string                 { return a.name }
func (a *Artifact) Type() string                 { return a.typ }
func (a *Artifact) Ext() string                  { return a.ext }

// Attribute returns an extra attribute of the artifact, e.g. a classifier
func (a *Artifact) Attribute(key string) (string, bool) {
	v, ok := a.attributes[key]
	return v, ok
}

// Attributes returns a copy of the extra attributes
func (a *Artifact) Attributes() map[string]string {
	return maps.Clone(a.attributes)
}

// FileName is the conventional "<name>.<ext>" file name of the artifact
func (a *Artifact) FileName() string {
	if a.ext == "" {
		return a.name
	}
	return a.name + "." + a.ext
}

// String renders e.g. "org#mod;1.2!mod.jar(jar)"
func (a *Artifact) String() string {
	var sb strings.Builder
	sb.WriteString(a.module.String())
	sb.WriteString("!")
	sb.WriteString(a.FileName())
	sb.WriteString("(")
	sb.WriteString(a.typ)
	sb.WriteString(")")
	keys := slices.Sorted(maps.Keys(a.attributes))
	for _, k := range keys {
		sb.WriteString("[" + k + "=" + a.attributes[k] + "]")
	}
	return sb.String()
}

// ForRevision returns a copy of the artifact attached to another revision of the same module.
// Used when an artifact was requested against a dynamic revision that has since been resolved.
func (a *Artifact) ForRevision(revision string) *Artifact {
	return NewArtifact(a.module.WithRevision(revision), a.name, a.typ, a.ext, a.attributes)
}
