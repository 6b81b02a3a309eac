// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := Make[string](10)
	assert.Len(t, s, 0)

	s.Insert("1001", "0110", "1001")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("1001"))
	assert.True(t, s.Has("0110"))
	assert.False(t, s.Has("0000"))
	assert.Equal(t, []string{"0110", "1001"}, Sorted(s))

	s2 := MakeWith(5, 7, 5)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(7))
	assert.False(t, s2.Has(3))
	assert.Equal(t, []int{5, 7}, Sorted(s2))
	assert.Empty(t, Sorted(Make[int]()))
}
