// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"daml.com/x/depres/pkg/utils"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

// Settings is the read-only configuration shared by matchers and resolvers.
// It's built once by Get and never mutated afterward.
type Settings struct {
	HomePath string `yaml:"-"`

	CachePath string `yaml:"-"`
	// dir in which artifacts fetched from non-local repositories are stored
	ArtifactCachePath string `yaml:"-"`
	// oci-layout dir containing raw pulled blobs
	OciLayoutCache string `yaml:"-"`

	// Statuses are ordered from the most to the least mature
	Statuses []string `yaml:"statuses,omitempty"`

	LatestStrategy string `yaml:"latest-strategy,omitempty"`

	DownloadParallelism int `yaml:"download-parallelism,omitempty"`

	FetchTimeoutRaw string        `yaml:"fetch-timeout,omitempty"`
	FetchTimeout    time.Duration `yaml:"-"`

	Offline bool `yaml:"offline,omitempty"`

	DefaultResolver string            `yaml:"default-resolver,omitempty"`
	Resolvers       []*ResolverConfig `yaml:"resolvers,omitempty"`
}

type ResolverConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// file
	Root            string `yaml:"root,omitempty"`
	IvyPattern      string `yaml:"ivy-pattern,omitempty"`
	ArtifactPattern string `yaml:"artifact-pattern,omitempty"`
	Local           *bool  `yaml:"local,omitempty"`

	// oci
	Registry string `yaml:"registry,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`
	AuthPath string `yaml:"auth-path,omitempty"`
	Netrc    string `yaml:"netrc,omitempty"`

	// git
	URL string `yaml:"url,omitempty"`

	// chain
	Resolvers   []string `yaml:"resolvers,omitempty"`
	ReturnFirst bool     `yaml:"return-first,omitempty"`
}

// StatusPriority returns the position of status in Statuses (0 being the most mature)
func (s *Settings) StatusPriority(status string) (int, bool) {
	i := slices.Index(s.Statuses, status)
	return i, i >= 0
}

// LeastMatureStatus is the last entry of Statuses
func (s *Settings) LeastMatureStatus() string {
	return lo.LastOr(s.Statuses, StatusIntegration)
}

func (s *Settings) Resolver(name string) (*ResolverConfig, bool) {
	return lo.Find(s.Resolvers, func(r *ResolverConfig) bool {
		return r.Name == name
	})
}

func (s *Settings) EnsureDirs() error {
	return utils.EnsureDirs(s.HomePath, s.ArtifactCachePath, s.OciLayoutCache)
}

// Default returns settings with every default applied, rooted at homePath, ignoring any config file or env var
func Default(homePath string) *Settings {
	s := &Settings{}
	s.applyDefaults(homePath)
	return s
}

func Get() (*Settings, error) {
	homePath, err := getHomePath()
	if err != nil {
		return nil, err
	}
	return GetWithCustomHome(homePath)
}

func GetWithCustomHome(homePath string) (*Settings, error) {
	s := Settings{}

	// depres-config.yaml is optional
	configFilePath := filepath.Join(homePath, ConfigFileName)
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("%q is directory and not a file", configFilePath)
		}

		bytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(bytes, &s); err != nil {
			return nil, err
		}
	}

	if v, ok := os.LookupEnv(LatestStrategyEnvVar); ok {
		s.LatestStrategy = v
	}

	if v, ok := os.LookupEnv(DownloadParallelismEnvVar); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for '%s' env var. Must be an integer", DownloadParallelismEnvVar)
		}
		s.DownloadParallelism = n
	}

	if v, ok := os.LookupEnv(FetchTimeoutEnvVar); ok {
		s.FetchTimeoutRaw = v
	}

	offline, ok, err := utils.BoolEnvVar(OfflineEnvVar)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Offline = offline
	}

	if v, ok := os.LookupEnv(DefaultResolverEnvVar); ok {
		s.DefaultResolver = v
	}

	if s.FetchTimeoutRaw != "" {
		d, err := time.ParseDuration(s.FetchTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid fetch-timeout %q: %w", s.FetchTimeoutRaw, err)
		}
		s.FetchTimeout = d
	}

	s.applyDefaults(homePath)
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyDefaults(homePath string) {
	if len(s.Statuses) == 0 {
		s.Statuses = slices.Clone(DefaultStatuses)
	}
	if s.LatestStrategy == "" {
		s.LatestStrategy = LatestRevision
	}
	if s.DownloadParallelism <= 0 {
		s.DownloadParallelism = DefaultDownloadParallelism
	}
	for _, r := range s.Resolvers {
		if r.Type == ResolverTypeFile {
			if r.IvyPattern == "" {
				r.IvyPattern = DefaultIvyPattern
			}
			if r.ArtifactPattern == "" {
				r.ArtifactPattern = DefaultArtifactPattern
			}
		}
	}

	cacheDir := filepath.Join(homePath, "cache")
	s.HomePath = homePath
	s.CachePath = cacheDir
	s.ArtifactCachePath = filepath.Join(cacheDir, "artifacts")
	s.OciLayoutCache = filepath.Join(cacheDir, "oci-layout")
}

func (s *Settings) validate() error {
	if !lo.Contains([]string{LatestRevision, LatestTime, LatestLexico}, s.LatestStrategy) {
		return fmt.Errorf("unknown latest-strategy %q. Must be one of %s, %s, %s", s.LatestStrategy, LatestRevision, LatestTime, LatestLexico)
	}

	seen := map[string]bool{}
	for _, r := range s.Resolvers {
		if r.Name == "" {
			return fmt.Errorf("resolvers must have a name")
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate resolver name %q", r.Name)
		}
		seen[r.Name] = true

		if !lo.Contains([]string{ResolverTypeFile, ResolverTypeOCI, ResolverTypeGit, ResolverTypeChain}, r.Type) {
			return fmt.Errorf("resolver %q has unknown type %q", r.Name, r.Type)
		}
	}
	for _, r := range s.Resolvers {
		for _, child := range r.Resolvers {
			if !seen[child] {
				return fmt.Errorf("chain resolver %q refers to unknown resolver %q", r.Name, child)
			}
		}
	}
	if s.DefaultResolver != "" && !seen[s.DefaultResolver] {
		return fmt.Errorf("default resolver %q is not defined", s.DefaultResolver)
	}
	return nil
}

func getHomePath() (string, error) {
	if v, ok := os.LookupEnv(HomeEnvVar); ok {
		return v, nil
	}

	return getAppUserDataDirectory("depres")
}

func getAppUserDataDirectory(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("APPDATA")
		if !ok {
			return "", fmt.Errorf("APPDATA environment variable is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "."+appName), nil
	}
}

func UserAgent(version string) string {
	return fmt.Sprintf("%s/%s", UserAgentPrefix, version)
}
