// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"daml.com/x/depres/cmd/depres/cmd/match"
	"daml.com/x/depres/cmd/depres/cmd/publish"
	"daml.com/x/depres/cmd/depres/cmd/resolve"
	"daml.com/x/depres/cmd/depres/cmd/revisions"
	"daml.com/x/depres/pkg/logging"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/version"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const DepresName = "depres"

func RootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   DepresName,
		Short: "resolve module revisions and download their artifacts",
	}

	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	config, err := settings.Get()
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		resolve.Cmd(config),
		revisions.Cmd(config),
		match.Cmd(config),
		publish.Cmd(config),
	)

	v, err := yaml.Marshal(version.Get())
	if err != nil {
		return nil, err
	}
	cmd.Version = string(v)
	cmd.SetVersionTemplate("{{.Version}}")

	return cmd, nil
}
