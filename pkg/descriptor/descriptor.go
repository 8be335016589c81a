// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package descriptor reads and writes module descriptors.
//
// Repositories hand over raw descriptor bytes; a Parser turns them into a module.Descriptor.
// YAML is the format understood out of the box:
//
//	apiVersion: depres.daml.com/v1
//	kind: ModuleDescriptor
//	module: {organisation: acme, name: widget, revision: "1.2"}
//	status: release
//	publication: 2024-05-01T10:00:00Z
//	artifacts:
//	  - {name: widget, type: jar, ext: jar}
package descriptor

import (
	"errors"
	"fmt"
	"time"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

const (
	APIGroup   = "depres.daml.com"
	Kind       = "ModuleDescriptor"
	Version    = "v1"
	APIVersion = APIGroup + "/" + Version
)

var ErrInvalidDescriptor = errors.New("invalid module descriptor")

// Parser is implemented by anything able to turn descriptor bytes into a module.Descriptor
type Parser interface {
	Parse(contents []byte) (*module.Descriptor, error)
}

// YAML is the Parser for the yaml descriptor format
type YAML struct{}

var _ Parser = YAML{}

type document struct {
	APIVersion   string              `yaml:"apiVersion"`
	Kind         string              `yaml:"kind"`
	Module       module.RevisionID   `yaml:"module"`
	Status       string              `yaml:"status,omitempty"`
	Publication  string              `yaml:"publication,omitempty"`
	Artifacts    []artifactEntry     `yaml:"artifacts,omitempty"`
	Dependencies []module.RevisionID `yaml:"dependencies,omitempty"`
}

type artifactEntry struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type,omitempty"`
	Ext        string            `yaml:"ext,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

func (YAML) Parse(contents []byte) (*module.Descriptor, error) {
	var doc document
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescriptor, err.Error())
	}

	md := &module.Descriptor{
		ResolvedModuleRevisionID: doc.Module,
		Status:                   lo.CoalesceOrEmpty(doc.Status, settings.StatusIntegration),
	}

	if doc.Publication != "" {
		t, err := time.Parse(time.RFC3339, doc.Publication)
		if err != nil {
			return nil, fmt.Errorf("%w: publication date %q isn't RFC3339: %w", ErrInvalidDescriptor, doc.Publication, err)
		}
		md.PublicationDate = t
	}

	md.Artifacts = lo.Map(doc.Artifacts, func(a artifactEntry, _ int) *module.Artifact {
		typ := lo.CoalesceOrEmpty(a.Type, module.DefaultArtifactType)
		return module.NewArtifact(doc.Module, a.Name, typ, lo.CoalesceOrEmpty(a.Ext, typ), a.Attributes)
	})
	md.Dependencies = lo.Map(doc.Dependencies, func(d module.RevisionID, _ int) *module.Dependency {
		return module.NewDependency(d)
	})
	return md, nil
}

func (d *document) validate() error {
	if d.Kind == "" {
		return fmt.Errorf("missing required field 'kind'")
	} else if d.Kind != Kind {
		return fmt.Errorf("unsupported kind %q. expected %q", d.Kind, Kind)
	}
	if d.APIVersion == "" {
		return fmt.Errorf("missing required field 'apiVersion'")
	} else if d.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q. expected %q", d.APIVersion, APIVersion)
	}

	if d.Module.Organisation == "" || d.Module.Name == "" || d.Module.Revision == "" {
		return fmt.Errorf("module must have an organisation, a name and a revision")
	}
	for _, a := range d.Artifacts {
		if a.Name == "" {
			return fmt.Errorf("artifacts must have a name")
		}
	}
	return nil
}

// Marshal renders md in the yaml descriptor format
func Marshal(md *module.Descriptor) ([]byte, error) {
	doc := document{
		APIVersion: APIVersion,
		Kind:       Kind,
		Module:     md.ResolvedModuleRevisionID,
		Status:     md.Status,
		Artifacts: lo.Map(md.Artifacts, func(a *module.Artifact, _ int) artifactEntry {
			return artifactEntry{Name: a.Name(), Type: a.Type(), Ext: a.Ext(), Attributes: a.Attributes()}
		}),
		Dependencies: lo.Map(md.Dependencies, func(d *module.Dependency, _ int) module.RevisionID {
			return d.Asked
		}),
	}
	if !md.PublicationDate.IsZero() {
		doc.Publication = md.PublicationDate.UTC().Format(time.RFC3339)
	}
	return yaml.Marshal(doc)
}
