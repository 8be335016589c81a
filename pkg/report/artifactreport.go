// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"time"

	"daml.com/x/depres/pkg/module"
)

// ArtifactDownloadReport is the outcome of one attempt at fetching one artifact.
// Reports are only ever produced by a Builder and are read-only afterward.
//
// DownloadedFile is non-empty if and only if Status is StatusSuccessful.
type ArtifactDownloadReport struct {
	artifact       *module.Artifact
	origin         *ArtifactOrigin
	downloadedFile string
	status         DownloadStatus
	size           int64
	details        string
	downloadTime   time.Duration
}

func (r *ArtifactDownloadReport) Artifact() *module.Artifact { return r.artifact }
func (r *ArtifactDownloadReport) Name() string               { return r.artifact.Name() }
func (r *ArtifactDownloadReport) Type() string               { return r.artifact.Type() }
func (r *ArtifactDownloadReport) Ext() string                { return r.artifact.Ext() }

// ArtifactOrigin is nil when no fetch was attempted
func (r *ArtifactDownloadReport) ArtifactOrigin() *ArtifactOrigin { return r.origin }

// DownloadedFile returns the local path of the artifact, or "" if and only if the download didn't succeed
func (r *ArtifactDownloadReport) DownloadedFile() string { return r.downloadedFile }

func (r *ArtifactDownloadReport) DownloadStatus() DownloadStatus { return r.status }
func (r *ArtifactDownloadReport) Size() int64                    { return r.size }

// DownloadDetails is diagnostic text only, empty unless the download failed
func (r *ArtifactDownloadReport) DownloadDetails() string { return r.details }

func (r *ArtifactDownloadReport) DownloadTime() time.Duration { return r.downloadTime }

func (r *ArtifactDownloadReport) DownloadTimeMillis() int64 { return r.downloadTime.Milliseconds() }

func (r *ArtifactDownloadReport) String() string {
	switch r.status {
	case StatusSuccessful:
		return fmt.Sprintf("[SUCCESSFUL ] %s (%dms)", r.artifact, r.DownloadTimeMillis())
	case StatusFailed:
		return fmt.Sprintf("[FAILED     ] %s : %s (%dms)", r.artifact, r.details, r.DownloadTimeMillis())
	case StatusNo:
		return fmt.Sprintf("[NOT REQUIRED] %s", r.artifact)
	default:
		return fmt.Sprintf("ArtifactDownloadReport{artifact=%s, status=%s}", r.artifact, r.status)
	}
}

// Summary is the serializable view of a report
type Summary struct {
	Artifact       string          `yaml:"artifact" json:"artifact"`
	Status         DownloadStatus  `yaml:"status" json:"status"`
	Origin         *ArtifactOrigin `yaml:"origin,omitempty" json:"origin,omitempty"`
	DownloadedFile string          `yaml:"file,omitempty" json:"file,omitempty"`
	Size           int64           `yaml:"size,omitempty" json:"size,omitempty"`
	Details        string          `yaml:"details,omitempty" json:"details,omitempty"`
	DownloadTimeMs int64           `yaml:"download-time-ms,omitempty" json:"downloadTimeMs,omitempty"`
}

func (r *ArtifactDownloadReport) Summary() Summary {
	return Summary{
		Artifact:       r.artifact.String(),
		Status:         r.status,
		Origin:         r.origin,
		DownloadedFile: r.downloadedFile,
		Size:           r.size,
		Details:        r.details,
		DownloadTimeMs: r.DownloadTimeMillis(),
	}
}
