// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"encoding/json"
	"fmt"
	"strings"

	"daml.com/x/depres/pkg/artifactcache"
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/resolver"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/version"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func Cmd(config *settings.Settings) *cobra.Command {
	var resolverName, output string
	var artifacts []string
	var force bool

	cmd := &cobra.Command{
		Use:   "resolve <organisation#module;revision>",
		Short: "resolve a module revision and download its artifacts",
		Long: `resolve a module revision and download its artifacts

	the revision may be dynamic, e.g. "latest.integration", "1.0.+" or "[1.0,2.0[".
	artifacts already in the artifact cache aren't downloaded again unless --force is given.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asked, err := module.ParseRevisionID(args[0])
			if err != nil {
				return err
			}
			requests, err := parseArtifactRequests(artifacts)
			if err != nil {
				return err
			}

			resolvers, err := resolver.FromSettings(config, version.UserAgent())
			if err != nil {
				return err
			}
			r, err := resolvers.Get(config, resolverName)
			if err != nil {
				return err
			}

			opts := resolver.DownloadOptions{}
			if !force {
				opts.Cache = artifactcache.FromSettings(config)
			}

			cmd.SilenceUsage = true
			rep, err := resolver.Resolve(cmd.Context(), r, module.NewDependency(asked, requests...), opts)
			if err != nil {
				return err
			}

			switch output {
			case "table":
				cmd.Printf("%s resolved to %s by %s\n", asked, color.GreenString(rep.Resolved.String()), rep.ResolverName)
				cmd.Println(rep.Table())
			case "yaml":
				data, err := yaml.Marshal(rep.Document())
				if err != nil {
					return err
				}
				cmd.Print(string(data))
			case "json":
				data, err := json.MarshalIndent(rep.Document(), "", "    ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
			default:
				return fmt.Errorf("output format not supported: %s", output)
			}

			if rep.HasFailures() {
				return fmt.Errorf("%d of %d artifacts failed to download", len(rep.Failed()), len(rep.Artifacts))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolverName, "resolver", "r", "", "name of the resolver to use, defaults to the configured default resolver")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table, yaml")
	cmd.Flags().StringArrayVarP(&artifacts, "artifact", "a", nil, "artifact to download, as name[:type[:ext]]. Can be repeated")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "download artifacts even when they're already cached")
	return cmd
}

func parseArtifactRequests(values []string) ([]module.ArtifactRequest, error) {
	result := make([]module.ArtifactRequest, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) > 3 || lo.Contains(parts, "") {
			return nil, fmt.Errorf("invalid artifact %q. Must be of the form 'name[:type[:ext]]'", v)
		}
		req := module.ArtifactRequest{Name: parts[0]}
		if len(parts) > 1 {
			req.Type = parts[1]
		}
		if len(parts) > 2 {
			req.Ext = parts[2]
		}
		result = append(result, req)
	}
	return result, nil
}
