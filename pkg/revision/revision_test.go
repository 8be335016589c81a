// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revision

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"1", "0", "rc", "2"}, Tokenize("1.0-rc2"))
	assert.Equal(t, []string{"1", "2", "b", "3"}, Tokenize("1.2b3"))
	assert.Equal(t, []string{"r", "123"}, Tokenize("r123"))
	assert.Empty(t, Tokenize(""))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		older, newer string
	}{
		{"1.0", "1.1"},
		{"1.2", "1.10"},
		{"1.0-dev", "1.0-alpha"},
		{"1.0-alpha", "1.0-rc1"},
		{"1.0-rc1", "1.0-rc2"},
		{"1.0-rc2", "1.0"},
		{"1.0", "1.0-final"},
		{"1.0", "1.0.1"},
		{"1.0-final", "1.0.1"},
		{"1.1", "1.1.0"},
		{"1.01", "1.1"},
		{"0.9", "1.0-dev"},
	}
	for _, tc := range tests {
		t.Run(tc.older+"<"+tc.newer, func(t *testing.T) {
			assert.Negative(t, Compare(tc.older, tc.newer))
			assert.Positive(t, Compare(tc.newer, tc.older))
			assert.True(t, Less(tc.older, tc.newer))
		})
	}
	assert.Zero(t, Compare("1.0", "1.0"))
}

func TestCompareIsStableTotalOrder(t *testing.T) {
	expected := []string{"0.9", "1.0-dev", "1.0-alpha", "1.0-rc1", "1.0", "1.0-final", "1.0.1", "1.2", "1.10", "2.0"}

	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(expected)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		slices.SortFunc(shuffled, Compare)
		assert.Equal(t, expected, shuffled)
	}
}
