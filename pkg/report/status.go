// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import "fmt"

// DownloadStatus is the terminal classification of one fetch attempt
type DownloadStatus int

const (
	// StatusUnset is the zero value, before the fetch attempt has concluded
	StatusUnset DownloadStatus = iota
	StatusSuccessful
	StatusFailed
	// StatusNo means the artifact didn't need to be fetched at all
	StatusNo
)

func (s DownloadStatus) String() string {
	switch s {
	case StatusSuccessful:
		return "successful"
	case StatusFailed:
		return "failed"
	case StatusNo:
		return "no"
	default:
		return "unset"
	}
}

func (s DownloadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DownloadStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "successful":
		*s = StatusSuccessful
	case "failed":
		*s = StatusFailed
	case "no":
		*s = StatusNo
	case "unset", "":
		*s = StatusUnset
	default:
		return fmt.Errorf("unknown download status %q", string(text))
	}
	return nil
}

// ArtifactOrigin is where an artifact was physically retrieved from
type ArtifactOrigin struct {
	Location string `yaml:"location" json:"location"`
	IsLocal  bool   `yaml:"local" json:"local"`
}

func NewArtifactOrigin(location string, isLocal bool) *ArtifactOrigin {
	return &ArtifactOrigin{Location: location, IsLocal: isLocal}
}

func (o *ArtifactOrigin) String() string {
	kind := "remote"
	if o.IsLocal {
		kind = "local"
	}
	return fmt.Sprintf("%s (%s)", o.Location, kind)
}
