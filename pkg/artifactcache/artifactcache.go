// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package artifactcache keeps copies of artifacts fetched from non-local repositories.
// Writers of the same artifact are serialized by a lock file next to it,
// which also holds across processes.
package artifactcache

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/utils"
)

type Cache struct {
	dir string
}

func New(dir string) *Cache {
	return &Cache{dir: dir}
}

func FromSettings(s *settings.Settings) *Cache {
	return New(s.ArtifactCachePath)
}

// Path is where artifact is stored, "<org>/<module>/<revision>/<type>/<name>[-<attr values>].<ext>"
func (c *Cache) Path(a *module.Artifact) string {
	mrid := a.ModuleRevisionID()
	name := a.Name()
	attrs := a.Attributes()
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		name += "-" + attrs[k]
	}
	if a.Ext() != "" {
		name += "." + a.Ext()
	}
	return filepath.Join(c.dir, sanitize(mrid.Organisation), sanitize(mrid.Name), sanitize(mrid.Revision), sanitize(a.Type()), sanitize(name))
}

func sanitize(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(s)
}

// Satisfied reports whether artifact is already in the cache
func (c *Cache) Satisfied(a *module.Artifact) bool {
	ok, err := utils.FileExists(c.Path(a))
	return err == nil && ok
}

// Fetch runs fetch with the cache path of artifact as destination, holding the artifact's lock
func (c *Cache) Fetch(ctx context.Context, a *module.Artifact, fetch func(dst string) (*repository.Resource, error)) (*repository.Resource, error) {
	dst := c.Path(a)
	var res *repository.Resource
	err := utils.WithLock(ctx, dst+".lock", func() error {
		var err error
		res, err = fetch(dst)
		return err
	})
	return res, err
}
