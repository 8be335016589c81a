// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package module

import "time"

// Descriptor is the in-memory form of a module's metadata, as produced by a descriptor parser
type Descriptor struct {
	ResolvedModuleRevisionID RevisionID
	Status                   string
	PublicationDate          time.Time
	Artifacts                []*Artifact
	Dependencies             []*Dependency
}

// Dependency is what a module asks for: a (possibly dynamic) revision and optionally a subset of its artifacts
type Dependency struct {
	Asked RevisionID
	// when empty, all artifacts of the resolved revision are wanted
	Artifacts []ArtifactRequest
}

type ArtifactRequest struct {
	Name       string
	Type       string
	Ext        string
	Attributes map[string]string
}

func NewDependency(asked RevisionID, artifacts ...ArtifactRequest) *Dependency {
	return &Dependency{Asked: asked, Artifacts: artifacts}
}

// Materialize turns the requested artifacts into artifacts of the resolved revision
func (d *Dependency) Materialize(resolved RevisionID) []*Artifact {
	result := make([]*Artifact, 0, len(d.Artifacts))
	for _, r := range d.Artifacts {
		typ, ext := r.Type, r.Ext
		if typ == "" {
			typ = DefaultArtifactType
		}
		if ext == "" {
			ext = typ
		}
		result = append(result, NewArtifact(resolved, r.Name, typ, ext, r.Attributes))
	}
	return result
}
