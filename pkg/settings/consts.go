// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package settings

const (
	ConfigFileName = "depres-config.yaml"

	LatestRevision = "latest-revision"
	LatestTime     = "latest-time"
	LatestLexico   = "latest-lexico"

	DefaultDownloadParallelism = 4

	// most mature first
	StatusRelease     = "release"
	StatusMilestone   = "milestone"
	StatusIntegration = "integration"

	ResolverTypeFile  = "file"
	ResolverTypeOCI   = "oci"
	ResolverTypeGit   = "git"
	ResolverTypeChain = "chain"

	DefaultIvyPattern      = "[organisation]/[module]/[revision]/ivy.yaml"
	DefaultArtifactPattern = "[organisation]/[module]/[revision]/[artifact].[ext]"

	UserAgentPrefix = "depres"
)

var DefaultStatuses = []string{StatusRelease, StatusMilestone, StatusIntegration}
