// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package ocirepo

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"daml.com/x/depres/pkg/module"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
)

// Publication is a module revision to push
type Publication struct {
	ID         module.RevisionID
	Descriptor []byte
	// artifact contents keyed by file name
	Artifacts map[string][]byte
}

// Publish pushes a module revision and tags it with its revision
func (r *Remote) Publish(ctx context.Context, p *Publication) (ocispec.Descriptor, error) {
	repo, err := r.Repo(RepoName(p.ID.ModuleID()))
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	var layers []ocispec.Descriptor
	if p.Descriptor != nil {
		desc, err := oras.PushBytes(ctx, repo, DescriptorMediaType, p.Descriptor)
		if err != nil {
			return ocispec.Descriptor{}, err
		}
		layers = append(layers, desc)
	}
	for _, name := range slices.Sorted(maps.Keys(p.Artifacts)) {
		desc, err := oras.PushBytes(ctx, repo, ArtifactLayerMediaType, p.Artifacts[name])
		if err != nil {
			return ocispec.Descriptor{}, err
		}
		desc.Annotations = map[string]string{ocispec.AnnotationTitle: name}
		layers = append(layers, desc)
	}

	manifest, err := oras.PackManifest(ctx, repo, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers: layers,
		ManifestAnnotations: map[string]string{
			ocispec.AnnotationVersion: p.ID.Revision,
		},
	})
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	if err := repo.Tag(ctx, manifest, p.ID.Revision); err != nil {
		return ocispec.Descriptor{}, err
	}
	slog.Debug("published module revision", "module", p.ID.String(), "digest", manifest.Digest.String())
	return manifest, nil
}
