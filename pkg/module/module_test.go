// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRevisionID(t *testing.T) {
	m, err := ParseRevisionID("org.acme#widget;1.2")
	require.NoError(t, err)
	assert.Equal(t, NewRevisionID("org.acme", "widget", "1.2"), m)
	assert.Equal(t, "org.acme#widget;1.2", m.String())

	for _, bad := range []string{"", "widget;1.2", "org#widget", "#widget;1", "org#;1"} {
		_, err := ParseRevisionID(bad)
		assert.Error(t, err, bad)
	}
}

func TestRevisionIDIsMapKey(t *testing.T) {
	seen := map[RevisionID]bool{}
	seen[NewRevisionID("o", "m", "1.0")] = true
	assert.True(t, seen[NewRevisionID("o", "m", "1.0")])
	assert.False(t, seen[NewRevisionID("o", "m", "1.1")])
}

func TestArtifactIsImmutable(t *testing.T) {
	attrs := map[string]string{"classifier": "sources"}
	a := NewArtifact(NewRevisionID("o", "m", "1.0"), "m", "source", "jar", attrs)
	attrs["classifier"] = "javadoc"

	v, ok := a.Attribute("classifier")
	require.True(t, ok)
	assert.Equal(t, "sources", v)

	a.Attributes()["classifier"] = "meep"
	v, _ = a.Attribute("classifier")
	assert.Equal(t, "sources", v)

	assert.Equal(t, "o#m;1.0!m.jar(source)[classifier=sources]", a.String())
}

func TestDependencyMaterialize(t *testing.T) {
	d := NewDependency(NewRevisionID("o", "m", "latest.integration"),
		ArtifactRequest{Name: "m"},
		ArtifactRequest{Name: "m-docs", Type: "doc", Ext: "zip"},
	)
	as := d.Materialize(NewRevisionID("o", "m", "2.0"))
	require.Len(t, as, 2)
	assert.Equal(t, "o#m;2.0!m.jar(jar)", as[0].String())
	assert.Equal(t, "o#m;2.0!m-docs.zip(doc)", as[1].String())
}
