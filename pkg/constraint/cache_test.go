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
	"math/big"
	"testing"

	"github.com/consensys/go-polyscan/pkg/polyhedron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualitiesEmpty(t *testing.T) {
	equal := NewEqualities(4, 2)
	//
	assert.Equal(t, uint(3), equal.Count())
	assert.Equal(t, uint(5), equal.TotalDimension())
	//
	for level := uint(1); level <= equal.Count(); level++ {
		assert.Equal(t, TypeNone, equal.Type(level))
	}
	//
	assert.Equal(t, uint(0), equal.Populated().Count())
}

func TestEqualitiesRecordThenClear(t *testing.T) {
	set, c := definingSet()
	equal := NewEqualities(3, 1)
	//
	release := equal.Record(set, 1, c)
	assert.Equal(t, TypeConstant, equal.Type(1))
	assert.Equal(t, uint(1), equal.Populated().Count())
	// Recording one level must not disturb its siblings
	assert.Equal(t, TypeNone, equal.Type(2))
	//
	release()
	assert.Equal(t, TypeNone, equal.Type(1))
	assert.Equal(t, uint(0), equal.Populated().Count())
}

func TestEqualitiesRecordExtendsToCacheDimensions(t *testing.T) {
	// Detected in a local set of 1 iterator + 1 parameter, but cached in the
	// nest-wide coordinate system of 3 levels + 1 parameter.
	set := NewSet(polyhedron.NewBasicSet(1, 1).
		Add(polyhedron.Equality, []int64{1, -1}, 0))
	c := set.DefiningEquality(1).Unwrap()
	//
	equal := NewEqualities(4, 1)
	defer equal.Record(set, 1, c)()
	//
	cached := equal.Constraint(1)
	require.Equal(t, equal.TotalDimension(), cached.TotalDimension())
	// Iterator coefficient stays at the front
	coeff := cached.Coefficient(0)
	assert.Equal(t, int64(1), coeff.Int64())
	// Parameter coefficient moves to the tail
	coeff = cached.Coefficient(3)
	assert.Equal(t, int64(-1), coeff.Int64())
}

func TestEqualitiesCachedCopyIsPrivate(t *testing.T) {
	set, c := definingSet()
	equal := NewEqualities(3, 1)
	//
	defer equal.Record(set, 1, c)()
	// Mutating the working set must not leak into the cache
	c.SetCoefficient(0, *big.NewInt(9))
	//
	cached := equal.Constraint(1)
	coeff := cached.Coefficient(0)
	assert.Equal(t, int64(1), coeff.Int64())
}

func TestEqualitiesConstraintOnEmptySlotPanics(t *testing.T) {
	equal := NewEqualities(3, 0)
	//
	assert.Panics(t, func() { equal.Constraint(1) })
}

func TestEqualitiesLevelOutOfBoundsPanics(t *testing.T) {
	equal := NewEqualities(3, 0)
	//
	assert.Panics(t, func() { equal.Type(0) })
	assert.Panics(t, func() { equal.Type(3) })
	assert.Panics(t, func() { equal.Clear(3) })
}

func TestEqualitiesNestedLevels(t *testing.T) {
	// i - 2 == 0 and j - i == 0, mirroring descent into a 2-deep nest
	set := NewSet(polyhedron.NewBasicSet(2, 0).
		Add(polyhedron.Equality, []int64{1, 0}, -2).
		Add(polyhedron.Equality, []int64{-1, 1}, 0))
	//
	equal := NewEqualities(3, 0)
	//
	outer := equal.Record(set, 1, set.DefiningEquality(1).Unwrap())
	inner := equal.Record(set, 2, set.DefiningEquality(2).Unwrap())
	//
	assert.Equal(t, TypeConstant, equal.Type(1))
	assert.Equal(t, TypePureItem, equal.Type(2))
	// Unwind inner first, outer unaffected
	inner()
	assert.Equal(t, TypeNone, equal.Type(2))
	assert.Equal(t, TypeConstant, equal.Type(1))
	//
	outer()
	assert.Equal(t, uint(0), equal.Populated().Count())
}

// definingSet produces a simple set whose first level is pinned by "i == 5",
// along with that defining equality.
func definingSet() (*Set, Constraint) {
	set := NewSet(polyhedron.NewBasicSet(1, 1).
		Add(polyhedron.Equality, []int64{1, 0}, -5))
	//
	return set, set.DefiningEquality(1).Unwrap()
}
