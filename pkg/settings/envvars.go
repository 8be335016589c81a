// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package settings

const envVarPrefix = "DEPRES_"

const (
	// HomeEnvVar
	// DEPRES_HOME is the absolute path to the `depres` home directory (config file and caches)
	HomeEnvVar = envVarPrefix + "HOME"

	// LogLevelEnvVar
	// DEPRES_LOG_LEVEL sets the log level.
	// 	Default: info
	//  Possible values: debug info warn error
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"

	// LatestStrategyEnvVar
	// DEPRES_LATEST_STRATEGY overrides how "latest" candidates are ranked.
	// 	Possible values: latest-revision latest-time latest-lexico
	LatestStrategyEnvVar = envVarPrefix + "LATEST_STRATEGY"

	// DownloadParallelismEnvVar
	// DEPRES_DOWNLOAD_PARALLELISM caps the number of artifacts of one revision fetched concurrently
	DownloadParallelismEnvVar = envVarPrefix + "DOWNLOAD_PARALLELISM"

	// FetchTimeoutEnvVar
	// DEPRES_FETCH_TIMEOUT bounds a single artifact fetch (a go duration, e.g. 30s). Unset or 0 means no bound
	FetchTimeoutEnvVar = envVarPrefix + "FETCH_TIMEOUT"

	// OfflineEnvVar
	// DEPRES_OFFLINE forbids any non-local repository access
	OfflineEnvVar = envVarPrefix + "OFFLINE"

	// DefaultResolverEnvVar
	// DEPRES_DEFAULT_RESOLVER overrides the resolver used when none is named explicitly
	DefaultResolverEnvVar = envVarPrefix + "DEFAULT_RESOLVER"
)
