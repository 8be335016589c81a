// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"
	"path/filepath"

	"daml.com/x/depres/pkg/repository/filerepo"
	"daml.com/x/depres/pkg/repository/gitrepo"
	"daml.com/x/depres/pkg/repository/ocirepo"
	"daml.com/x/depres/pkg/settings"
)

// Resolvers are the configured resolvers by name
type Resolvers map[string]Resolver

// FromSettings builds every resolver configured in s
func FromSettings(s *settings.Settings, userAgent string) (Resolvers, error) {
	result := Resolvers{}
	// chains last, so that their children exist
	for _, chains := range []bool{false, true} {
		for _, rc := range s.Resolvers {
			if (rc.Type == settings.ResolverTypeChain) != chains {
				continue
			}
			r, err := build(s, rc, result, userAgent)
			if err != nil {
				return nil, fmt.Errorf("resolver %q: %w", rc.Name, err)
			}
			result[rc.Name] = r
		}
	}
	return result, nil
}

// Get returns the resolver called name, or the default one when name is empty
func (rs Resolvers) Get(s *settings.Settings, name string) (Resolver, error) {
	if name == "" {
		name = s.DefaultResolver
	}
	if name == "" {
		if len(s.Resolvers) != 1 {
			return nil, fmt.Errorf("no resolver specified and no default resolver configured")
		}
		name = s.Resolvers[0].Name
	}
	r, ok := rs[name]
	if !ok {
		return nil, fmt.Errorf("unknown resolver %q", name)
	}
	return r, nil
}

func build(s *settings.Settings, rc *settings.ResolverConfig, built Resolvers, userAgent string) (Resolver, error) {
	switch rc.Type {
	case settings.ResolverTypeFile:
		root, err := filepath.Abs(rc.Root)
		if err != nil {
			return nil, err
		}
		opts := []filerepo.Option{
			filerepo.WithIvyPattern(rc.IvyPattern),
			filerepo.WithArtifactPattern(rc.ArtifactPattern),
		}
		if rc.Local != nil {
			opts = append(opts, filerepo.WithLocal(*rc.Local))
		}
		return NewFileSystem(rc.Name, filerepo.New(root, opts...), s), nil

	case settings.ResolverTypeOCI:
		remote, err := ocirepo.NewRemote(rc.Registry, ocirepo.Credentials{AuthPath: rc.AuthPath, NetrcPath: rc.Netrc}, rc.Insecure, userAgent)
		if err != nil {
			return nil, err
		}
		return NewOCI(rc.Name, ocirepo.New(remote, s.OciLayoutCache), s), nil

	case settings.ResolverTypeGit:
		var opts []gitrepo.Option
		if rc.IvyPattern != "" {
			opts = append(opts, gitrepo.WithIvyPattern(rc.IvyPattern))
		}
		if rc.ArtifactPattern != "" {
			opts = append(opts, gitrepo.WithArtifactPattern(rc.ArtifactPattern))
		}
		return NewGit(rc.Name, gitrepo.New(rc.URL, opts...), s), nil

	case settings.ResolverTypeChain:
		children := make([]Resolver, 0, len(rc.Resolvers))
		for _, name := range rc.Resolvers {
			child, ok := built[name]
			if !ok {
				return nil, fmt.Errorf("chains can't contain chains (%q)", name)
			}
			children = append(children, child)
		}
		return NewChain(rc.Name, s, rc.ReturnFirst, children...), nil

	default:
		return nil, fmt.Errorf("unknown resolver type %q", rc.Type)
	}
}
