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
package clast

import (
	"testing"

	"github.com/consensys/go-polyscan/pkg/constraint"
	"github.com/consensys/go-polyscan/pkg/polyhedron"
	"github.com/stretchr/testify/assert"
)

func TestVariableExpr(t *testing.T) {
	set := constraint.NewSet(polyhedron.NewBasicSet(2, 2).
		Add(polyhedron.Equality, []int64{1, 0, -1, 0}, 0))
	//
	names := NewNames([]string{"i", "j"}, []string{"m", "n"})
	c := set.First().Unwrap()
	// Levels within the iterator range yield iterator names
	assert.Equal(t, "i", VariableExpr(c, 1, names).String())
	assert.Equal(t, "j", VariableExpr(c, 2, names).String())
	// Levels beyond it yield parameter names by offset
	assert.Equal(t, "m", VariableExpr(c, 3, names).String())
	assert.Equal(t, "n", VariableExpr(c, 4, names).String())
}

func TestVariableExprOutOfRangePanics(t *testing.T) {
	set := constraint.NewSet(polyhedron.NewBasicSet(1, 1).
		Add(polyhedron.Equality, []int64{1, 0}, 0))
	//
	names := NewNames([]string{"i"}, []string{"n"})
	c := set.First().Unwrap()
	//
	assert.Panics(t, func() { VariableExpr(c, 0, names) })
	assert.Panics(t, func() { VariableExpr(c, 3, names) })
}

func TestNamesAccessors(t *testing.T) {
	names := NewNames([]string{"i"}, []string{"n"})
	//
	assert.Equal(t, uint(1), names.NumIterators())
	assert.Equal(t, uint(1), names.NumParameters())
	assert.Equal(t, "i", names.IteratorAtLevel(1))
	assert.Equal(t, "n", names.Parameter(0))
	//
	assert.Panics(t, func() { names.IteratorAtLevel(2) })
	assert.Panics(t, func() { names.Parameter(1) })
}
