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

	"github.com/bits-and-blooms/bitset"
)

// Equalities caches, per loop level, the equality currently known to define
// that level's iterator.  The cache follows the recursion of the code
// generator through the loop nest: on entering a level whose iterator is
// pinned by a defining equality (or inequality pair) the fact is recorded,
// and it is cleared again when the generator leaves that level's scope.
// Slots therefore obey a strict stack discipline and are never left
// populated across sibling levels.
//
// All cached equalities are private, normalised copies sharing one
// coordinate system of TotalDimension() free dimensions, regardless of which
// level's local constraint set they were detected in.
type Equalities struct {
	// Free dimensions of the shared coordinate system.
	totalDim uint
	// Per-level classification; TypeNone when the slot is empty.
	types []EqualityType
	// Per-level recorded equality, held as a single-row set.
	constraints []*Set
	// Which slots are currently populated.
	populated *bitset.BitSet
}

// NewEqualities constructs an empty cache for a loop nest of nLevels levels
// (level 0 counting as "outside any loop") over nParameters parameters.
func NewEqualities(nLevels, nParameters uint) *Equalities {
	n := nLevels - 1
	//
	return &Equalities{
		totalDim:    n + nParameters,
		types:       make([]EqualityType, n),
		constraints: make([]*Set, n),
		populated:   bitset.New(n),
	}
}

// TotalDimension returns the number of free dimensions of the cache's shared
// coordinate system.
func (p *Equalities) TotalDimension() uint {
	return p.totalDim
}

// Count returns the number of slots in this cache, one per loop level.  This
// is a static property, not the number of currently populated slots.
func (p *Equalities) Count() uint {
	return uint(len(p.types))
}

// Type returns the classification of the equality recorded for the given
// level, or TypeNone when no equality is recorded.
func (p *Equalities) Type(level uint) EqualityType {
	p.checkLevel(level)
	//
	return p.types[level-1]
}

// Populated returns the set of levels (zero based slot indices) which
// currently hold a recorded equality.
func (p *Equalities) Populated() *bitset.BitSet {
	return p.populated.Clone()
}

// Record stores the given defining equality for the given level, classifying
// it and extending it to the cache's coordinate system.  This is called
// exactly once per level, immediately after the equality is detected, and
// must be matched by a Clear before the generator leaves that level's scope.
// The returned closure performs that Clear, so the pairing can be enforced
// with defer.
func (p *Equalities) Record(set *Set, level uint, c Constraint) func() {
	p.checkLevel(level)
	//
	p.types[level-1] = equalType(c, level)
	// Take a private copy, widened to the shared coordinate system
	single := set.bset.FromRow(c.row)
	target := p.totalDim - single.Parameters()
	//
	if single.Dimension() > target {
		panic(fmt.Sprintf("constraint has %d iterators, cache admits %d", single.Dimension(), target))
	}
	//
	p.constraints[level-1] = NewSet(single.Extend(target - single.Dimension()))
	p.populated.Set(level - 1)
	//
	return func() { p.Clear(level) }
}

// Clear discards the equality recorded for the given level, resetting its
// type to TypeNone.  Called exactly once, when the generator finishes
// emitting that level's body.
func (p *Equalities) Clear(level uint) {
	p.checkLevel(level)
	//
	p.types[level-1] = TypeNone
	p.constraints[level-1] = nil
	p.populated.Clear(level - 1)
}

// Constraint returns the equality recorded for the given level, for use as a
// substitution when constructing expressions.  Callers must check Type
// first; reading an empty slot is a contract violation.
func (p *Equalities) Constraint(level uint) Constraint {
	p.checkLevel(level)
	//
	if p.types[level-1] == TypeNone {
		panic(fmt.Sprintf("no equality recorded for level %d", level))
	}
	//
	return p.constraints[level-1].First().Unwrap()
}

func (p *Equalities) checkLevel(level uint) {
	if level == 0 || level > uint(len(p.types)) {
		panic(fmt.Sprintf("level %d out-of-bounds (cache has %d slots)", level, len(p.types)))
	}
}
