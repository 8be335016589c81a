// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"fmt"
	"time"

	"daml.com/x/depres/pkg/module"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/versionmatcher"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// placeholder module used when only revisions are given
var anyModule = module.NewModuleID("any", "any")

func Cmd(config *settings.Settings) *cobra.Command {
	var status, published string

	cmd := &cobra.Command{
		Use:   "match <asked revision> <found revision>",
		Short: "show which version matcher handles a revision and whether it accepts another one",
		Long: `show which version matcher handles a revision and whether it accepts another one

	some matchers (e.g. latest.<status>) need the found revision's metadata,
	which is taken from --status and --published.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asked, found := anyModule.WithRevision(args[0]), anyModule.WithRevision(args[1])

			chain := versionmatcher.NewDefault(config)
			m := chain.Route(asked)

			var accepted bool
			if m.NeedModuleDescriptor(asked, found) {
				md := &module.Descriptor{
					ResolvedModuleRevisionID: found,
					Status:                   status,
				}
				if published != "" {
					t, err := time.Parse(time.RFC3339, published)
					if err != nil {
						return fmt.Errorf("invalid --published value %q. Must be RFC3339: %w", published, err)
					}
					md.PublicationDate = t
				}
				accepted = versionmatcher.AcceptDescriptor(m, asked, md)
			} else {
				accepted = m.Accept(asked, found)
			}

			cmd.Printf("matcher:  %s\n", m.Name())
			cmd.Printf("dynamic:  %t\n", m.IsDynamic(asked))
			if accepted {
				cmd.Printf("result:   %s\n", color.GreenString("accepted"))
			} else {
				cmd.Printf("result:   %s\n", color.RedString("rejected"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", settings.StatusIntegration, "status of the found revision")
	cmd.Flags().StringVar(&published, "published", "", "publication date of the found revision (RFC3339)")
	return cmd
}
