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
package polyhedron

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// RowTag distinguishes the two kinds of constraint a basic set can hold.
type RowTag uint8

const (
	// Equality tags a constraint of the form "expr == 0".
	Equality RowTag = iota
	// Inequality tags a constraint of the form "expr >= 0".
	Inequality
)

// Row represents a single (in)equality over the columns of a basic set.  The
// coefficient layout follows the fixed indexing convention: iterator
// dimensions first, then parameters, then (if any remain) existentially
// quantified division dimensions, with the constant term held separately.
type Row struct {
	tag    RowTag
	coeffs []big.Int
	k      big.Int
}

// Tag returns whether this row is an equality or an inequality.
func (p *Row) Tag() RowTag {
	return p.tag
}

// BasicSet is a conjunction of affine constraints over a fixed column space,
// stored as a dense coefficient matrix in PolyLib row order.  A basic set
// knows how its columns split between iterator dimensions, parameters and
// division dimensions; constraints read from it are meaningless outside that
// split.
type BasicSet struct {
	// Number of iterator dimensions.
	dim uint
	// Number of parameters.
	nparam uint
	// Number of existentially quantified (division) dimensions.  These are
	// expected to have been eliminated before code generation inspects the
	// set.
	ndiv uint
	//
	rows []Row
}

// NewBasicSet constructs an empty basic set over the given column space.
func NewBasicSet(dim, nparam uint) *BasicSet {
	return &BasicSet{dim, nparam, 0, nil}
}

// NewBasicSetWithDivisions constructs an empty basic set which retains ndiv
// existentially quantified dimensions.
func NewBasicSetWithDivisions(dim, nparam, ndiv uint) *BasicSet {
	return &BasicSet{dim, nparam, ndiv, nil}
}

// Dimension returns the number of iterator dimensions in this set.
func (p *BasicSet) Dimension() uint {
	return p.dim
}

// Parameters returns the number of parameters in this set.
func (p *BasicSet) Parameters() uint {
	return p.nparam
}

// Divisions returns the number of existentially quantified dimensions still
// present in this set.
func (p *BasicSet) Divisions() uint {
	return p.ndiv
}

// Columns returns the total number of coefficient columns (iterators,
// parameters and divisions, excluding the constant).
func (p *BasicSet) Columns() uint {
	return p.dim + p.nparam + p.ndiv
}

// Len returns the number of constraints in this set.
func (p *BasicSet) Len() uint {
	return uint(len(p.rows))
}

// Add appends a constraint given its coefficients in column order followed by
// the constant term.  This is primarily a convenience for construction; it
// panics if the number of coefficients does not match the column space.
func (p *BasicSet) Add(tag RowTag, coeffs []int64, constant int64) *BasicSet {
	if uint(len(coeffs)) != p.Columns() {
		panic(fmt.Sprintf("row has %d coefficients, set has %d columns", len(coeffs), p.Columns()))
	}
	//
	row := Row{tag, make([]big.Int, len(coeffs)), *big.NewInt(constant)}
	for i, c := range coeffs {
		row.coeffs[i].SetInt64(c)
	}
	//
	p.rows = append(p.rows, row)
	// Done
	return p
}

// Tag returns whether the given constraint is an equality or an inequality.
func (p *BasicSet) Tag(row uint) RowTag {
	return p.rows[row].tag
}

// Coefficient returns (a copy of) the coefficient of a given column in a
// given constraint.
func (p *BasicSet) Coefficient(row, col uint) big.Int {
	p.checkColumn(col)
	//
	var val big.Int
	val.Set(&p.rows[row].coeffs[col])
	//
	return val
}

// SetCoefficient updates the coefficient of a given column in a given
// constraint.
func (p *BasicSet) SetCoefficient(row, col uint, val big.Int) {
	p.checkColumn(col)
	p.rows[row].coeffs[col].Set(&val)
}

// Constant returns (a copy of) the constant term of a given constraint.
func (p *BasicSet) Constant(row uint) big.Int {
	var val big.Int
	val.Set(&p.rows[row].k)
	//
	return val
}

// SetConstant updates the constant term of a given constraint.
func (p *BasicSet) SetConstant(row uint, val big.Int) {
	p.rows[row].k.Set(&val)
}

// ClearRow zeroes every coefficient (and the constant) of a given constraint.
func (p *BasicSet) ClearRow(row uint) {
	for i := range p.rows[row].coeffs {
		p.rows[row].coeffs[i].SetInt64(0)
	}
	//
	p.rows[row].k.SetInt64(0)
}

// Dup constructs a hard copy of this basic set, sharing no storage with the
// original.
func (p *BasicSet) Dup() *BasicSet {
	rows := make([]Row, len(p.rows))
	//
	for i := range p.rows {
		rows[i] = p.rows[i].dup()
	}
	//
	return &BasicSet{p.dim, p.nparam, p.ndiv, rows}
}

// Extend constructs a copy of this basic set with extra (unconstrained)
// iterator columns inserted before the parameter columns.  Existing
// coefficients keep their meaning; the new columns are zero in every row.
func (p *BasicSet) Extend(extra uint) *BasicSet {
	if extra == 0 {
		return p.Dup()
	}
	//
	ext := &BasicSet{p.dim + extra, p.nparam, p.ndiv, make([]Row, len(p.rows))}
	//
	for i := range p.rows {
		row := Row{p.rows[i].tag, make([]big.Int, ext.Columns()), big.Int{}}
		// Iterator columns stay in place
		for j := uint(0); j < p.dim; j++ {
			row.coeffs[j].Set(&p.rows[i].coeffs[j])
		}
		// Parameter / division columns shift right
		for j := p.dim; j < p.Columns(); j++ {
			row.coeffs[j+extra].Set(&p.rows[i].coeffs[j])
		}
		//
		row.k.Set(&p.rows[i].k)
		ext.rows[i] = row
	}
	// Done
	return ext
}

// FromRow constructs a new basic set, over the same column space, containing
// only the given constraint.
func (p *BasicSet) FromRow(row uint) *BasicSet {
	return &BasicSet{p.dim, p.nparam, p.ndiv, []Row{p.rows[row].dup()}}
}

// InvolvedRows determines which constraints of this set have a nonzero
// coefficient at the given column.
func (p *BasicSet) InvolvedRows(col uint) *bitset.BitSet {
	p.checkColumn(col)
	//
	rows := bitset.New(uint(len(p.rows)))
	//
	for i := range p.rows {
		if p.rows[i].coeffs[col].Sign() != 0 {
			rows.Set(uint(i))
		}
	}
	//
	return rows
}

// HasDefiningEquality searches for an equality which defines the iterator at
// position pos (zero based) in terms of outer iterators and parameters only.
// That is, an equality whose coefficient at pos is nonzero whilst every later
// iterator and every division column is zero.  In the simplified form handed
// over by the engine such an equality, when it exists, is unique.
func (p *BasicSet) HasDefiningEquality(pos uint) (uint, bool) {
	p.checkIterator(pos)
	//
	for i := range p.rows {
		row := &p.rows[i]
		if row.tag != Equality || row.coeffs[pos].Sign() == 0 {
			continue
		}
		// Check no later iterator (or division) is involved
		if row.firstNonZero(pos+1, p.dim) < 0 && row.firstNonZero(p.dim+p.nparam, p.Columns()) < 0 {
			return uint(i), true
		}
	}
	//
	return 0, false
}

// HasDefiningInequalities searches for a pair of inequalities
//
//	 <a,i> - m e +  <b,p> + k1 >= 0
//	-<a,i> + m e + -<b,p> + k2 >= 0
//
// which pin the iterator e at position pos (zero based) to a single value for
// every choice of the other variables.  The two rows must have exactly
// opposite coefficients on every column, a coefficient of magnitude m > 1 at
// pos, and constants satisfying 0 <= k1 + k2 < m.  On success the row with
// the positive coefficient at pos (the lower bound) is returned first.
func (p *BasicSet) HasDefiningInequalities(pos uint) (lower uint, upper uint, ok bool) {
	p.checkIterator(pos)
	//
	var m, sum big.Int
	//
	for i := range p.rows {
		row := &p.rows[i]
		if row.tag != Inequality || row.coeffs[pos].Sign() == 0 {
			continue
		}
		// Require coefficient magnitude m > 1
		m.Abs(&row.coeffs[pos])
		if m.CmpAbs(one) <= 0 {
			continue
		}
		//
		for j := i + 1; j < len(p.rows); j++ {
			other := &p.rows[j]
			if other.tag != Inequality || !row.isNegationOf(other) {
				continue
			}
			// Require 0 <= k1 + k2 < m
			sum.Add(&row.k, &other.k)
			if sum.Sign() < 0 || sum.Cmp(&m) >= 0 {
				continue
			}
			// Lower bound has positive coefficient at pos
			if row.coeffs[pos].Sign() > 0 {
				return uint(i), uint(j), true
			}
			//
			return uint(j), uint(i), true
		}
	}
	//
	return 0, 0, false
}

func (p *BasicSet) String() string {
	var builder strings.Builder
	//
	for i := range p.rows {
		row := &p.rows[i]
		//
		if i != 0 {
			builder.WriteString("; ")
		}
		//
		for j := range row.coeffs {
			if j != 0 {
				builder.WriteString(" ")
			}
			//
			builder.WriteString(row.coeffs[j].String())
		}
		//
		builder.WriteString(" ")
		builder.WriteString(row.k.String())
		//
		if row.tag == Equality {
			builder.WriteString(" == 0")
		} else {
			builder.WriteString(" >= 0")
		}
	}
	//
	return builder.String()
}

func (p *BasicSet) checkColumn(col uint) {
	if col >= p.Columns() {
		panic(fmt.Sprintf("column %d out-of-bounds (set has %d columns)", col, p.Columns()))
	}
}

func (p *BasicSet) checkIterator(pos uint) {
	if pos >= p.dim {
		panic(fmt.Sprintf("iterator %d out-of-bounds (set has %d iterators)", pos, p.dim))
	}
}

var one = big.NewInt(1)

func (p *Row) dup() Row {
	coeffs := make([]big.Int, len(p.coeffs))
	//
	for i := range p.coeffs {
		coeffs[i].Set(&p.coeffs[i])
	}
	//
	var k big.Int
	k.Set(&p.k)
	//
	return Row{p.tag, coeffs, k}
}

// firstNonZero returns the index of the first nonzero coefficient in the
// half-open column range [from, to), or -1 if all are zero.
func (p *Row) firstNonZero(from, to uint) int {
	for i := from; i < to; i++ {
		if p.coeffs[i].Sign() != 0 {
			return int(i)
		}
	}
	//
	return -1
}

// isNegationOf checks whether every coefficient of other is the exact
// negation of the corresponding coefficient of this row.  Constants are not
// compared.
func (p *Row) isNegationOf(other *Row) bool {
	var neg big.Int
	//
	for i := range p.coeffs {
		neg.Neg(&p.coeffs[i])
		//
		if neg.Cmp(&other.coeffs[i]) != 0 {
			return false
		}
	}
	//
	return true
}
