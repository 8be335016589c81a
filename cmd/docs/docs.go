// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	depres "daml.com/x/depres/cmd/depres/cmd"
	"daml.com/x/depres/pkg/settings"
	"daml.com/x/depres/pkg/utils"
	"daml.com/x/depres/pkg/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	if err := docsCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func docsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "docs <output dir>",
		Short: "generate the depres CLI reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains([]string{"md", "rst", "man"}, format) {
				return fmt.Errorf("unsupported format %q. Must be one of md, rst, man", format)
			}

			cmd.SilenceUsage = true
			if err := genDocs(args[0], format); err != nil {
				return err
			}
			cmd.Printf("successfully generated at %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "md", "md, rst or man")
	return cmd
}

func genDocs(dir, format string) error {
	// keep the user's config and caches out of the generated reference
	tmp, deleteFn, err := utils.MkdirTemp("", "depres-docs")
	if err != nil {
		return err
	}
	defer func() { _ = deleteFn() }()
	if err := os.Setenv(settings.HomeEnvVar, tmp); err != nil {
		return err
	}

	root, err := depres.RootCmd()
	if err != nil {
		return err
	}
	root.DisableAutoGenTag = true

	if err := utils.EnsureDirs(dir); err != nil {
		return err
	}

	switch format {
	case "rst":
		if err := doc.GenReSTTreeCustom(root, dir, rstHeader, rstLink); err != nil {
			return err
		}
		return writeRSTIndex(dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   strings.ToUpper(depres.DepresName),
			Section: "1",
			Source:  version.UserAgent(),
		}, dir)
	default:
		return doc.GenMarkdownTree(root, dir)
	}
}

func title(filename, ext string) string {
	return strings.ReplaceAll(strings.TrimSuffix(filepath.Base(filename), ext), "_", " ")
}

func rstHeader(filename string) string {
	t := title(filename, ".rst")
	return fmt.Sprintf("%s\n%s\n\n", t, strings.Repeat("=", len(t)))
}

func rstLink(name, ref string) string {
	return fmt.Sprintf(":ref:`%s <%s>`", name, ref)
}

func writeRSTIndex(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(".. toctree::\n   :maxdepth: 2\n   :caption: CLI Reference:\n\n")
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".rst" && e.Name() != "index.rst" {
			fmt.Fprintf(&b, "   %s\n", strings.TrimSuffix(e.Name(), ".rst"))
		}
	}
	_, err = utils.WriteFile(filepath.Join(dir, "index.rst"), strings.NewReader(b.String()))
	return err
}
