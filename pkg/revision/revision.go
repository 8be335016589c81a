// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package revision defines the one total order used to rank revision strings.
//
// Revisions are split into tokens on '.', '-', '_' and '+' and on every boundary between
// digits and non-digits, then compared token by token:
//   - numeric tokens compare numerically and are greater than any word
//   - words compare by their special meaning (dev < any other word < rc < final), then alphabetically
//   - when one revision runs out of tokens, it is greater than the other unless the
//     other continues with a number or "final" (so 1.0-rc1 < 1.0 < 1.0.1 and 1.0 < 1.0-final)
//
// Revisions that are still equal after that (e.g. "1.01" and "1.1") are ordered byte-wise,
// so Compare never returns 0 for distinct strings.
package revision

import (
	"strings"
	"unicode"
)

var specialMeanings = map[string]int{
	"dev":   -1,
	"rc":    1,
	"final": 2,
}

const finalMeaning = 2

// Compare returns a negative number when a is older than b, a positive one when it is newer, 0 iff a == b
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	ta, tb := Tokenize(a), Tokenize(b)
	for i := 0; i < max(len(ta), len(tb)); i++ {
		var x, y *string
		if i < len(ta) {
			x = &ta[i]
		}
		if i < len(tb) {
			y = &tb[i]
		}
		if c := compareTokens(x, y); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Tokenize splits a revision into its comparable tokens
func Tokenize(r string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	var prevDigit bool
	for i, c := range r {
		switch c {
		case '.', '-', '_', '+':
			flush()
			continue
		}
		isDigit := unicode.IsDigit(c)
		if i > 0 && current.Len() > 0 && isDigit != prevDigit {
			flush()
		}
		current.WriteRune(c)
		prevDigit = isDigit
	}
	flush()
	return tokens
}

// rank orders token kinds: plain words < end of revision < "final" < numbers
func rank(t *string) int {
	switch {
	case t == nil:
		return 1
	case isNumber(*t):
		return 3
	case meaning(*t) >= finalMeaning:
		return 2
	default:
		return 0
	}
}

func compareTokens(x, y *string) int {
	rx, ry := rank(x), rank(y)
	if rx != ry {
		return rx - ry
	}
	switch rx {
	case 1:
		return 0
	case 3:
		return compareNumbers(*x, *y)
	default:
		if mx, my := meaning(*x), meaning(*y); mx != my {
			return mx - my
		}
		return strings.Compare(strings.ToLower(*x), strings.ToLower(*y))
	}
}

func compareNumbers(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		return len(x) - len(y)
	}
	return strings.Compare(x, y)
}

func meaning(word string) int {
	return specialMeanings[strings.ToLower(word)]
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}
