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

import "math/big"

// EqualityType classifies the shape of a defining equality relative to the
// variable it defines.  Downstream expression construction uses the type to
// decide how aggressively to substitute: freely for TypeConstant and
// TypePureItem, more conservatively for TypeExAffine since substituting a
// general affine expression may grow the printed code.
type EqualityType uint8

const (
	// TypeNone indicates no equality is recorded.
	TypeNone EqualityType = iota
	// TypeConstant indicates the variable equals a literal integer (e.g.
	// "i == -13").
	TypeConstant
	// TypePureItem indicates the variable equals exactly one other variable
	// with unit coefficient (e.g. "i == j" or "j == -n").
	TypePureItem
	// TypeExAffine indicates the variable equals a general affine expression
	// (e.g. "j == 2*n" or "i == j+1").
	TypeExAffine
)

func (t EqualityType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeConstant:
		return "constant"
	case TypePureItem:
		return "pure item"
	case TypeExAffine:
		return "affine expression"
	default:
		return "unknown"
	}
}

// equalType classifies an equality which defines the iterator at the given
// (1 based) level.  The coefficient of the defined variable itself is
// ignored, as is the sign of the constant term.  Every other coefficient is
// inspected in a fixed order (parameters, then remaining iterators, then
// divisions): a single nonzero coefficient of magnitude one yields
// TypePureItem; any coefficient of larger magnitude, or any second nonzero
// coefficient, immediately yields TypeExAffine; if everything (constant
// included) is zero the variable is pinned to a literal, hence TypeConstant.
func equalType(c Constraint, level uint) EqualityType {
	var (
		bset   = c.owner.bset
		dim    = bset.Dimension()
		nparam = bset.Parameters()
		typ    = TypeNone
		none   = bset.Columns()
	)
	//
	if k := bset.Constant(c.row); k.Sign() != 0 {
		typ = TypeConstant
	}
	// Parameters
	if typ = scanColumns(c, dim, dim+nparam, none, typ); typ == TypeExAffine {
		return typ
	}
	// Iterators, skipping the defined variable
	if typ = scanColumns(c, 0, dim, level-1, typ); typ == TypeExAffine {
		return typ
	}
	// Divisions
	if typ = scanColumns(c, dim+nparam, none, none, typ); typ == TypeExAffine {
		return typ
	}
	// All-zero equality pins the variable to a literal
	if typ == TypeNone {
		typ = TypeConstant
	}
	//
	return typ
}

// scanColumns folds the classification over the columns [from, to),
// skipping the column of the defined variable (if it falls within range) and
// short-circuiting once the type degrades to TypeExAffine.
func scanColumns(c Constraint, from, to, skip uint, typ EqualityType) EqualityType {
	bset := c.owner.bset
	//
	for i := from; i < to; i++ {
		if i == skip {
			continue
		}
		//
		coeff := bset.Coefficient(c.row, i)
		if coeff.Sign() == 0 {
			continue
		}
		//
		if coeff.CmpAbs(big.NewInt(1)) != 0 || typ != TypeNone {
			return TypeExAffine
		}
		//
		typ = TypePureItem
	}
	//
	return typ
}
