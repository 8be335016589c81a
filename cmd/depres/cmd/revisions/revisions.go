// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revisions

import (
	"slices"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/resolver"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/version"
	"daml.com/x/depres/pkg/versionmatcher"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func Cmd(config *settings.Settings) *cobra.Command {
	var resolverName string

	cmd := &cobra.Command{
		Use:   "revisions <organisation#module>",
		Short: "list the revisions of a module known to a resolver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mid, err := module.ParseModuleID(args[0])
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

			revisions, err := r.ListRevisions(cmd.Context(), mid)
			if err != nil {
				return err
			}

			if len(revisions) == 0 {
				cmd.Printf("No revisions found for %q\n", mid.String())
				return nil
			}

			slices.SortFunc(revisions, versionmatcher.StaticComparator)
			lo.ForEach(revisions, func(rev string, _ int) {
				cmd.Println(rev)
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolverName, "resolver", "r", "", "name of the resolver to use, defaults to the configured default resolver")
	return cmd
}
