// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package constraint

import (
	"testing"

	"github.com/consensys/go-polyscan/pkg/polyhedron"
	"github.com/stretchr/testify/assert"
)

// Classification of an equality defining i, over iterators i, j and
// parameter n.
func TestEqualityTypes(t *testing.T) {
	tests := []struct {
		name     string
		coeffs   []int64
		constant int64
		expected EqualityType
	}{
		{"i - 3 == 0", []int64{1, 0, 0}, -3, TypeConstant},
		{"i == 0", []int64{1, 0, 0}, 0, TypeConstant},
		{"i - j == 0", []int64{1, -1, 0}, 0, TypePureItem},
		{"i + n == 0", []int64{1, 0, 1}, 0, TypePureItem},
		{"i - 2n == 0", []int64{1, 0, -2}, 0, TypeExAffine},
		{"i - j - n == 0", []int64{1, -1, -1}, 0, TypeExAffine},
		{"i - j - 1 == 0", []int64{1, -1, 0}, -1, TypeExAffine},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet(polyhedron.NewBasicSet(2, 1).
				Add(polyhedron.Equality, tt.coeffs, tt.constant))
			//
			c := set.First().Unwrap()
			assert.Equal(t, tt.expected, equalType(c, 1))
		})
	}
}

// The defined variable's own coefficient never influences classification.
func TestEqualityTypeIgnoresDefinedVariable(t *testing.T) {
	// 4j - n == 0, defining j
	set := NewSet(polyhedron.NewBasicSet(2, 1).
		Add(polyhedron.Equality, []int64{0, 4, -1}, 0))
	//
	c := set.First().Unwrap()
	assert.Equal(t, TypePureItem, equalType(c, 2))
}

// Classification only depends on the constraint itself, not on where it sits
// in the owning set.
func TestEqualityTypeOrderInvariant(t *testing.T) {
	defining := []int64{1, 0, -1}
	other := []int64{0, 1, -3}
	// Defining equality first
	first := NewSet(polyhedron.NewBasicSet(2, 1).
		Add(polyhedron.Equality, defining, 0).
		Add(polyhedron.Inequality, other, 0))
	// Defining equality last
	last := NewSet(polyhedron.NewBasicSet(2, 1).
		Add(polyhedron.Inequality, other, 0).
		Add(polyhedron.Equality, defining, 0))
	//
	d1 := first.DefiningEquality(1).Unwrap()
	d2 := last.DefiningEquality(1).Unwrap()
	//
	assert.Equal(t, TypePureItem, equalType(d1, 1))
	assert.Equal(t, equalType(d1, 1), equalType(d2, 1))
}
