// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/repository/gitrepo"
	"daml.com/x/depres/pkg/repository/ocirepo"
	"daml.com/x/depres/pkg/settings"
)

// FileSystem resolves against a repository laid out on a filesystem.
// Its repository tolerates concurrent fetches.
type FileSystem struct {
	*RepositoryResolver
}

// NewFileSystem accepts any repository; IsLocal and SetLocal fail unless it implements repository.Locality
func NewFileSystem(name string, repo repository.Repository, s *settings.Settings, opts ...Option) *FileSystem {
	return &FileSystem{newRepositoryResolver(name, TypeFile, repo, s, opts)}
}

// OCI resolves against an OCI registry.
// Its repository tolerates concurrent fetches; they share one http client.
type OCI struct {
	*RepositoryResolver
}

func NewOCI(name string, repo *ocirepo.Repository, s *settings.Settings, opts ...Option) *OCI {
	return &OCI{newRepositoryResolver(name, TypeOCI, repo, s, opts)}
}

// Git resolves against tags of a git repository.
// Its repository serializes all calls, so downloads don't run in parallel.
type Git struct {
	*RepositoryResolver
}

func NewGit(name string, repo *gitrepo.Repository, s *settings.Settings, opts ...Option) *Git {
	return &Git{newRepositoryResolver(name, TypeGit, repo, s, opts)}
}
