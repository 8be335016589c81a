// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"time"

	"daml.com/x/depres/pkg/module"
)

// Builder accumulates the outcome of a single fetch attempt.
// It's owned by the goroutine performing the fetch and must not be shared.
// Each terminal method (Succeeded, Failed, NotRequired) leaves the report in a state
// satisfying the DownloadedFile/Status invariant; Build snapshots it.
type Builder struct {
	r     ArtifactDownloadReport
	start time.Time
	now   func() time.Time
}

func NewBuilder(artifact *module.Artifact) *Builder {
	return newBuilder(artifact, time.Now)
}

func newBuilder(artifact *module.Artifact, now func() time.Time) *Builder {
	return &Builder{
		r:   ArtifactDownloadReport{artifact: artifact},
		now: now,
	}
}

// Start marks the beginning of the transfer; the elapsed time is measured from here
func (b *Builder) Start() *Builder {
	b.start = b.now()
	return b
}

// Origin records where the fetch is being attempted from, before its outcome is known
func (b *Builder) Origin(origin *ArtifactOrigin) *Builder {
	b.r.origin = origin
	return b
}

func (b *Builder) Succeeded(origin *ArtifactOrigin, file string, size int64) *Builder {
	b.r.status = StatusSuccessful
	b.r.origin = origin
	b.r.downloadedFile = file
	b.r.size = size
	b.r.details = ""
	b.stop()
	return b
}

func (b *Builder) Failed(details string) *Builder {
	b.r.status = StatusFailed
	b.r.downloadedFile = ""
	b.r.size = 0
	b.r.details = details
	b.stop()
	return b
}

// NotRequired marks an artifact that needed no transfer; no timing is recorded
func (b *Builder) NotRequired() *Builder {
	b.r.status = StatusNo
	b.r.downloadedFile = ""
	b.r.size = 0
	b.r.details = ""
	b.r.downloadTime = 0
	return b
}

func (b *Builder) stop() {
	if b.start.IsZero() {
		return
	}
	b.r.downloadTime = b.now().Sub(b.start)
}

// Build returns the finished report. The builder shouldn't be used afterward
func (b *Builder) Build() *ArtifactDownloadReport {
	r := b.r
	return &r
}
