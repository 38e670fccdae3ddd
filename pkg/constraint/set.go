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

	"github.com/consensys/go-polyscan/pkg/polyhedron"
	"github.com/consensys/go-polyscan/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Set represents one polyhedron as an ordered collection of constraints,
// wrapping the engine's basic set representation.  The code generator
// inspects sets which the engine has already simplified; in particular, all
// existentially quantified dimensions must have been eliminated before any
// total-dimension query is made.
type Set struct {
	bset *polyhedron.BasicSet
}

// NewSet wraps an engine basic set as a constraint set.
func NewSet(bset *polyhedron.BasicSet) *Set {
	return &Set{bset}
}

// Pair holds the two inequalities which together pin an iterator to a single
// value modulo a constant.  Lower is the constraint bounding the iterator
// from below (positive coefficient); Upper bounds it from above.
type Pair struct {
	Lower Constraint
	Upper Constraint
}

// TotalDimension returns the number of iterator and parameter dimensions of
// this set.  The generator is defined only over representations whose
// division dimensions have been eliminated, so this panics if any remain.
func (p *Set) TotalDimension() uint {
	if n := p.bset.Divisions(); n != 0 {
		panic(fmt.Sprintf("constraint set still has %d division dimensions", n))
	}
	//
	return p.bset.Dimension() + p.bset.Parameters()
}

// NumIterators returns the number of iterator dimensions of this set.
func (p *Set) NumIterators() uint {
	return p.TotalDimension() - p.bset.Parameters()
}

// NumParameters returns the number of parameters of this set.
func (p *Set) NumParameters() uint {
	return p.bset.Parameters()
}

// ContainsLevel checks whether the given (1 based) level falls within the
// iterator dimensions of this set.  This is a coarse dimension-bound check,
// not a semantic test for whether the level is constrained.
func (p *Set) ContainsLevel(level uint) bool {
	return p.bset.Dimension() >= level
}

// Len returns the number of constraints in this set.
func (p *Set) Len() uint {
	return p.bset.Len()
}

// Copy builds a hard copy of this constraint set, sharing no storage with
// the original.
func (p *Set) Copy() *Set {
	return &Set{p.bset.Dup()}
}

// First returns the first constraint of this set, if any.
func (p *Set) First() util.Option[Constraint] {
	if p.bset.Len() == 0 {
		return util.None[Constraint]()
	}
	//
	return util.Some(Constraint{p, 0})
}

// DefiningEquality checks whether the iterator at the given (1 based) level
// is defined by an equality, returning that equality if so.
func (p *Set) DefiningEquality(level uint) util.Option[Constraint] {
	p.checkLevel(level)
	//
	if row, ok := p.bset.HasDefiningEquality(level - 1); ok {
		return util.Some(Constraint{p, row})
	}
	//
	return util.None[Constraint]()
}

// DefiningInequalityPair checks whether the iterator at the given (1 based)
// level is pinned to a single value by a pair of inequalities
//
//	 <a,i> - m e +  <b,p> + k1 >= 0
//	-<a,i> + m e + -<b,p> + k2 >= 0
//
// with m > 1 and 0 <= k1 + k2 < m, the pattern underlying a modulo guard.
// If any other constraint of the set also involves that iterator, the
// detection declines: the guard generated from the pair alone would be
// correct, but guards for the remaining constraints would be needed as well,
// and combining them is not supported.  Declining is deliberate; a partial
// guard is never returned.
func (p *Set) DefiningInequalityPair(level uint) util.Option[Pair] {
	p.checkLevel(level)
	//
	lower, upper, ok := p.bset.HasDefiningInequalities(level - 1)
	if !ok {
		return util.None[Pair]()
	}
	// Decline if any other constraint involves this iterator
	rows := p.bset.InvolvedRows(level - 1)
	rows.Clear(lower)
	rows.Clear(upper)
	//
	if rows.Any() {
		log.Debugf("declining modulo guard at level %d (%d other constraints involve it)", level, rows.Count())
		return util.None[Pair]()
	}
	//
	return util.Some(Pair{Constraint{p, lower}, Constraint{p, upper}})
}

// Normalize would rewrite the set such that, whenever an equality defines
// the iterator at the given level, no other constraint involves that
// iterator.  The simplified form handed over by the engine already satisfies
// this condition, so there is nothing to do.
func (p *Set) Normalize(level uint) {
}

// Simplify would rewrite every constraint of this set using the equalities
// currently recorded for the enclosing levels (e.g. given i == 2, the
// constraint i+j+3 >= 0 becomes j+5 >= 0), leaving the given level alone.
// The engine performs these simplifications when computing the per-level
// sets, so a plain copy suffices here.
func (p *Set) Simplify(equal *Equalities, level uint) *Set {
	return p.Copy()
}

func (p *Set) String() string {
	return p.bset.String()
}

func (p *Set) checkLevel(level uint) {
	if level == 0 || !p.ContainsLevel(level) {
		panic(fmt.Sprintf("level %d out-of-bounds (set has %d iterators)", level, p.bset.Dimension()))
	}
}
