// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pattern expands repository layout patterns such as
// "[organisation]/[module]/[revision]/[artifact].[ext]".
package pattern

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"daml.com/x/depres/pkg/module"
	"github.com/karrick/godirwalk"
	"github.com/samber/lo"
)

const (
	Organisation = "organisation"
	Module       = "module"
	Revision     = "revision"
	Artifact     = "artifact"
	Type         = "type"
	Ext          = "ext"
)

var tokenRegexp = regexp.MustCompile(`\[([a-z]+)\]`)

// Tokens returns the tokens used by p, in order of appearance
func Tokens(p string) []string {
	return lo.Uniq(lo.Map(tokenRegexp.FindAllStringSubmatch(p, -1), func(m []string, _ int) string {
		return m[1]
	}))
}

// Substitute replaces every known token of p. Unknown tokens are left as is
func Substitute(p string, tokens map[string]string) string {
	return tokenRegexp.ReplaceAllStringFunc(p, func(t string) string {
		if v, ok := tokens[t[1:len(t)-1]]; ok {
			return v
		}
		return t
	})
}

func ModuleTokens(mid module.ModuleID) map[string]string {
	return map[string]string{
		Organisation: mid.Organisation,
		Module:       mid.Name,
	}
}

func RevisionTokens(mrid module.RevisionID) map[string]string {
	t := ModuleTokens(mrid.ModuleID())
	t[Revision] = mrid.Revision
	return t
}

func ArtifactTokens(a *module.Artifact) map[string]string {
	t := RevisionTokens(a.ModuleRevisionID())
	t[Artifact] = a.Name()
	t[Type] = a.Type()
	t[Ext] = a.Ext()
	for k, v := range a.Attributes() {
		if _, ok := t[k]; !ok {
			t[k] = v
		}
	}
	return t
}

// ListValues lists the values token takes under root, once the fixed tokens of p are substituted.
// Only the path segments preceding the one holding token may contain tokens, and they must all be fixed.
// When the rest of the pattern is fully determined, values whose file doesn't exist are left out.
// A missing directory yields no values.
func ListValues(root, p, token string, fixed map[string]string) ([]string, error) {
	segments := strings.Split(path.Clean(Substitute(p, fixed)), "/")
	needle := "[" + token + "]"

	i := slices.IndexFunc(segments, func(s string) bool {
		return strings.Contains(s, needle)
	})
	if i < 0 {
		return nil, errors.New("pattern " + p + " doesn't contain token " + needle)
	}
	if len(Tokens(path.Join(segments[:i]...))) > 0 {
		return nil, errors.New("pattern " + p + " has unresolved tokens before " + needle)
	}

	dir := filepath.Join(append([]string{root}, segments[:i]...)...)
	names, err := godirwalk.ReadDirnames(dir, nil)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	matcher := segmentRegexp(segments[i], token)
	rest := segments[i+1:]
	var values []string
	for _, name := range names {
		m := matcher.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		value := m[1]
		if !restExists(dir, name, rest, token, value) {
			continue
		}
		values = append(values, value)
	}
	values = lo.Uniq(values)
	slices.Sort(values)
	return values, nil
}

func segmentRegexp(segment, token string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString("^")
	last := 0
	captured := false
	for _, loc := range tokenRegexp.FindAllStringSubmatchIndex(segment, -1) {
		sb.WriteString(regexp.QuoteMeta(segment[last:loc[0]]))
		if segment[loc[2]:loc[3]] == token && !captured {
			sb.WriteString("(.+?)")
			captured = true
		} else {
			sb.WriteString(".+?")
		}
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(segment[last:]))
	sb.WriteString("$")
	return regexp.MustCompile(sb.String())
}

func restExists(dir, name string, rest []string, token, value string) bool {
	remaining := Substitute(path.Join(rest...), map[string]string{token: value})
	if len(Tokens(remaining)) > 0 {
		return true
	}
	_, err := os.Stat(filepath.Join(dir, name, filepath.FromSlash(remaining)))
	return err == nil
}
