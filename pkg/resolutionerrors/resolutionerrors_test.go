// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolutionerrors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"daml.com/x/depres/pkg/module"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionError(t *testing.T) {
	asked := module.NewRevisionID("acme", "widget", "[2.0,3.0)")
	err := NewRevisionNotFoundError(asked, os.ErrNotExist)

	assert.Equal(t, "REVISION_NOT_FOUND acme#widget;[2.0,3.0): file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)

	wrapped := fmt.Errorf("resolving: %w", err)
	assert.True(t, HasCode(wrapped, RevisionNotFound))
	assert.False(t, HasCode(wrapped, DescriptorFetchFailed))
	assert.Same(t, err, Standardize(wrapped))
}

func TestStandardize(t *testing.T) {
	assert.Nil(t, Standardize(nil))
	std := Standardize(errors.New("meep"))
	assert.Equal(t, UnknownError, std.Code)
	assert.Equal(t, "UNKNOWN_ERROR: meep", std.Error())
}

func TestMarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(NewUnsupportedOperationError(errors.New("no locality")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "code: UNSUPPORTED_OPERATION")
	assert.Contains(t, string(data), "cause: no locality")
}
