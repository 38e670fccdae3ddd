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
	"fmt"
	"math/big"

	"github.com/consensys/go-polyscan/pkg/polyhedron"
	"github.com/consensys/go-polyscan/pkg/util"
)

// Constraint is a read/write view onto a single row of an owning constraint
// set.  A constraint carries no dimension bookkeeping of its own and is only
// meaningful in the context of that set.  Variable indices run over the
// half-open range [0, TotalDimension()), with indices below the iterator
// count addressing iterator coefficients and the remainder addressing
// parameter coefficients.
type Constraint struct {
	owner *Set
	row   uint
}

// Owner returns the constraint set this constraint is a view into.
func (c Constraint) Owner() *Set {
	return c.owner
}

// Coefficient returns the coefficient of the given variable.
func (c Constraint) Coefficient(v uint) big.Int {
	c.checkVariable(v)
	//
	return c.owner.bset.Coefficient(c.row, v)
}

// SetCoefficient updates the coefficient of the given variable.
func (c Constraint) SetCoefficient(v uint, val big.Int) {
	c.checkVariable(v)
	//
	c.owner.bset.SetCoefficient(c.row, v, val)
}

// Constant returns the constant term of this constraint.
func (c Constraint) Constant() big.Int {
	return c.owner.bset.Constant(c.row)
}

// IsEquality determines whether this constraint is an equality ("expr == 0")
// as opposed to an inequality ("expr >= 0").
func (c Constraint) IsEquality() bool {
	return c.owner.bset.Tag(c.row) == polyhedron.Equality
}

// Involves determines whether this constraint has a nonzero coefficient at
// the given variable.
func (c Constraint) Involves(v uint) bool {
	coeff := c.Coefficient(v)
	return coeff.Sign() != 0
}

// IsLowerBound determines whether this constraint bounds the given variable
// from below.  Since inequalities read "expr >= 0", a positive coefficient
// means increasing the variable helps satisfy the constraint.
func (c Constraint) IsLowerBound(v uint) bool {
	coeff := c.Coefficient(v)
	return coeff.Sign() > 0
}

// IsUpperBound determines whether this constraint bounds the given variable
// from above.
func (c Constraint) IsUpperBound(v uint) bool {
	coeff := c.Coefficient(v)
	return coeff.Sign() < 0
}

// TotalDimension returns the total dimension of the owning set.
func (c Constraint) TotalDimension() uint {
	return c.owner.TotalDimension()
}

// CopyCoefficients writes this constraint into dst in the canonical external
// (PolyLib) order: all iterator coefficients, then all parameter
// coefficients, then the constant.  dst must hold TotalDimension()+1
// entries.
func (c Constraint) CopyCoefficients(dst []big.Int) {
	dim := c.TotalDimension()
	//
	if uint(len(dst)) != dim+1 {
		panic(fmt.Sprintf("destination holds %d entries (expected %d)", len(dst), dim+1))
	}
	//
	for i := uint(0); i < dim; i++ {
		dst[i] = c.Coefficient(i)
	}
	//
	dst[dim] = c.Constant()
}

// Clear zeroes every coefficient of this constraint, along with its constant
// term.
func (c Constraint) Clear() {
	c.owner.bset.ClearRow(c.row)
}

// Next returns the constraint following this one in the owning set, if any.
// Iteration order is unspecified but stable.
func (c Constraint) Next() util.Option[Constraint] {
	if c.row+1 < c.owner.bset.Len() {
		return util.Some(Constraint{c.owner, c.row + 1})
	}
	//
	return util.None[Constraint]()
}

func (c Constraint) checkVariable(v uint) {
	if v >= c.TotalDimension() {
		panic(fmt.Sprintf("variable %d out-of-bounds (total dimension %d)", v, c.TotalDimension()))
	}
}
