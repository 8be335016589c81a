// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"daml.com/x/depres/pkg/descriptor"
	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/repository/ocirepo"
	"daml.com/x/depres/pkg/resolver"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func Cmd(config *settings.Settings) *cobra.Command {
	var resolverName, descriptorPath string

	cmd := &cobra.Command{
		Use:   "publish <organisation#module;revision> [artifact files...]",
		Short: "publish a module revision to the registry of an oci resolver",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := module.ParseRevisionID(args[0])
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
			oci, ok := r.(*resolver.OCI)
			if !ok {
				return fmt.Errorf("resolver %q is of type %q, only %q resolvers can publish", r.Name(), r.TypeName(), resolver.TypeOCI)
			}
			remote := oci.Repository().(*ocirepo.Repository).Remote()

			p := &ocirepo.Publication{ID: id, Artifacts: map[string][]byte{}}
			if descriptorPath != "" {
				p.Descriptor, err = os.ReadFile(descriptorPath)
				if err != nil {
					return err
				}
				md, err := descriptor.YAML{}.Parse(p.Descriptor)
				if err != nil {
					return err
				}
				if md.ResolvedModuleRevisionID != id {
					return fmt.Errorf("descriptor %q is for %s, not %s", descriptorPath, md.ResolvedModuleRevisionID, id)
				}
			}
			for _, path := range args[1:] {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				p.Artifacts[filepath.Base(path)] = data
			}

			cmd.SilenceUsage = true
			manifest, err := remote.Publish(cmd.Context(), p)
			if err != nil {
				return err
			}

			coloredDest := color.GreenString(fmt.Sprintf("%s/%s:%s", remote.Registry, ocirepo.RepoName(id.ModuleID()), id.Revision))
			cmd.Printf("Published %s (%s)\n", coloredDest, manifest.Digest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolverName, "resolver", "r", "", "name of the oci resolver to publish with, defaults to the configured default resolver")
	cmd.Flags().StringVarP(&descriptorPath, "descriptor", "d", "", "path to the module descriptor (yaml)")
	return cmd
}
