// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import "daml.com/x/depres/pkg/settings"

// To be populated at build-time, e.g.:
// go build -ldflags "-X 'daml.com/x/depres/pkg/version.Version=1.2.3'"
var (
	Version   string
	Build     string
	BuildDate string
)

type Info struct {
	Version   string `json:"version" yaml:"version"`
	Build     string `json:"build" yaml:"build"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
}

func defaultUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func Get() Info {
	return Info{
		Version:   defaultUnknown(Version),
		Build:     defaultUnknown(Build),
		BuildDate: defaultUnknown(BuildDate),
	}
}

// UserAgent is sent with every registry request
func UserAgent() string {
	return settings.UserAgentPrefix + "/" + defaultUnknown(Version)
}
