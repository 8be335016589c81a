// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"daml.com/x/depres/pkg/descriptor"
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/repository"
	"daml.com/x/depres/pkg/utils"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory repository without any notion of locality
type fakeRepo struct {
	name        string
	revisions   map[module.ModuleID][]string
	descriptors map[module.RevisionID][]byte
	// keyed by artifact.String()
	artifacts map[string][]byte

	fetchErr   error
	fetchWait  time.Duration
	blockFetch bool
	networked  bool

	mu          sync.Mutex
	fetchCalls  int
	inFlight    int
	maxInFlight int
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo(name string) *fakeRepo {
	return &fakeRepo{
		name:        name,
		revisions:   map[module.ModuleID][]string{},
		descriptors: map[module.RevisionID][]byte{},
		artifacts:   map[string][]byte{},
	}
}

func (f *fakeRepo) Name() string    { return f.name }
func (f *fakeRepo) Networked() bool { return f.networked }

// add registers a revision with its default artifact
func (f *fakeRepo) add(mrid module.RevisionID) *fakeRepo {
	f.revisions[mrid.ModuleID()] = append(f.revisions[mrid.ModuleID()], mrid.Revision)
	f.artifacts[module.DefaultArtifact(mrid).String()] = []byte("content of " + mrid.String())
	return f
}

func (f *fakeRepo) addDescriptor(t *testing.T, md *module.Descriptor) *fakeRepo {
	b, err := descriptor.Marshal(md)
	require.NoError(t, err)
	f.descriptors[md.ResolvedModuleRevisionID] = b
	return f
}

func (f *fakeRepo) addArtifact(a *module.Artifact, content string) *fakeRepo {
	f.artifacts[a.String()] = []byte(content)
	return f
}

func (f *fakeRepo) ListRevisions(_ context.Context, mid module.ModuleID) ([]string, error) {
	return f.revisions[mid], nil
}

func (f *fakeRepo) FetchDescriptor(_ context.Context, mrid module.RevisionID) ([]byte, error) {
	b, ok := f.descriptors[mrid]
	if !ok {
		return nil, fmt.Errorf("%s: %w", mrid, repository.ErrNotFound)
	}
	return b, nil
}

func (f *fakeRepo) FetchArtifact(ctx context.Context, a *module.Artifact, dst string) (*repository.Resource, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.inFlight++
	f.maxInFlight = max(f.maxInFlight, f.inFlight)
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.blockFetch {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.fetchWait > 0 {
		time.Sleep(f.fetchWait)
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	b, ok := f.artifacts[a.String()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", a, repository.ErrNotFound)
	}
	n, err := utils.WriteFile(dst, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return &repository.Resource{Location: f.name + "/" + a.FileName(), Path: dst, Size: n}, nil
}

func (f *fakeRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

// fakeCache is satisfied by a fixed set of artifacts
type fakeCache map[string]bool

func (c fakeCache) Satisfied(a *module.Artifact) bool {
	return c[a.String()]
}
