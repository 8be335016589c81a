// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"

	"daml.com/x/depres/pkg/module"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

// ResolveReport aggregates the artifact reports of one resolved dependency
type ResolveReport struct {
	Asked        module.RevisionID
	Resolved     module.RevisionID
	ResolverName string
	Artifacts    []*ArtifactDownloadReport
}

func (r *ResolveReport) withStatus(s DownloadStatus) []*ArtifactDownloadReport {
	return lo.Filter(r.Artifacts, func(a *ArtifactDownloadReport, _ int) bool {
		return a.DownloadStatus() == s
	})
}

func (r *ResolveReport) Successful() []*ArtifactDownloadReport  { return r.withStatus(StatusSuccessful) }
func (r *ResolveReport) Failed() []*ArtifactDownloadReport      { return r.withStatus(StatusFailed) }
func (r *ResolveReport) NotRequired() []*ArtifactDownloadReport { return r.withStatus(StatusNo) }

func (r *ResolveReport) HasFailures() bool {
	return lo.SomeBy(r.Artifacts, func(a *ArtifactDownloadReport) bool {
		return a.DownloadStatus() == StatusFailed
	})
}

// TotalSize is the number of bytes transferred by successful downloads
func (r *ResolveReport) TotalSize() int64 {
	return lo.SumBy(r.Successful(), func(a *ArtifactDownloadReport) int64 {
		return a.Size()
	})
}

type Document struct {
	Asked     string    `yaml:"asked" json:"asked"`
	Resolved  string    `yaml:"resolved" json:"resolved"`
	Resolver  string    `yaml:"resolver" json:"resolver"`
	Artifacts []Summary `yaml:"artifacts" json:"artifacts"`
}

// Document is the serializable view of the report, used for yaml/json output
func (r *ResolveReport) Document() Document {
	return Document{
		Asked:    r.Asked.String(),
		Resolved: r.Resolved.String(),
		Resolver: r.ResolverName,
		Artifacts: lo.Map(r.Artifacts, func(a *ArtifactDownloadReport, _ int) Summary {
			return a.Summary()
		}),
	}
}

func (r *ResolveReport) Table() string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("STATUS", "ARTIFACT", "SIZE", "TIME", "ORIGIN").
		Rows(lo.Map(r.Artifacts, func(a *ArtifactDownloadReport, _ int) []string {
			status := a.DownloadStatus().String()
			switch a.DownloadStatus() {
			case StatusSuccessful:
				status = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render(status)
			case StatusFailed:
				status = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render(status)
			default:
				status = lipgloss.NewStyle().Faint(true).Italic(true).Render(status)
			}

			var size, elapsed, origin string
			if a.DownloadStatus() != StatusNo {
				elapsed = fmt.Sprintf("%dms", a.DownloadTimeMillis())
			}
			if a.DownloadStatus() == StatusSuccessful {
				size = fmt.Sprintf("%d", a.Size())
			}
			if a.ArtifactOrigin() != nil {
				origin = a.ArtifactOrigin().String()
			}
			return []string{status, a.Artifact().String(), size, elapsed, origin}
		})...).
		String()
}
