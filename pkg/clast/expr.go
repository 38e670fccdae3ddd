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

// Package clast holds the symbolic leaves handed to the output-code layer,
// along with the name table used to bind dimension indices to iterator and
// parameter symbols.
package clast

import (
	"fmt"

	"github.com/consensys/go-polyscan/pkg/constraint"
)

// Expr is a node of the generated expression tree.  Only the leaves this
// layer produces are defined here; composite nodes belong to the
// pretty-printing layer.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Name is a symbolic leaf referring to an iterator or parameter by name.
type Name struct {
	Value string
}

func (p *Name) isExpr() {}

func (p *Name) String() string {
	return p.Value
}

// Names binds the dimensions of the generated loop nest to printable
// symbols: one name per iterator level, plus one per program parameter.
type Names struct {
	iterators  []string
	parameters []string
}

// NewNames constructs a name table from iterator names (indexed by level,
// starting at level 1) and parameter names.
func NewNames(iterators []string, parameters []string) *Names {
	return &Names{iterators, parameters}
}

// NumIterators returns the number of iterator names bound.
func (p *Names) NumIterators() uint {
	return uint(len(p.iterators))
}

// NumParameters returns the number of parameter names bound.
func (p *Names) NumParameters() uint {
	return uint(len(p.parameters))
}

// IteratorAtLevel returns the iterator name for the given (1 based) level.
func (p *Names) IteratorAtLevel(level uint) string {
	if level == 0 || level > uint(len(p.iterators)) {
		panic(fmt.Sprintf("level %d out-of-bounds (%d iterator names)", level, len(p.iterators)))
	}
	//
	return p.iterators[level-1]
}

// Parameter returns the name of the given (zero based) parameter.
func (p *Names) Parameter(index uint) string {
	if index >= uint(len(p.parameters)) {
		panic(fmt.Sprintf("parameter %d out-of-bounds (%d parameter names)", index, len(p.parameters)))
	}
	//
	return p.parameters[index]
}

// VariableExpr constructs the symbolic leaf for the variable at the given
// (1 based) level of the given constraint: an iterator name when the level
// falls within the iterator range, and otherwise the parameter at the
// corresponding offset beyond it.
func VariableExpr(c constraint.Constraint, level uint, names *Names) *Name {
	var (
		totalDim = c.TotalDimension()
		nbIter   = totalDim - names.NumParameters()
		name     string
	)
	//
	if level <= nbIter {
		name = names.IteratorAtLevel(level)
	} else {
		name = names.Parameter(level - (nbIter + 1))
	}
	//
	return &Name{name}
}
