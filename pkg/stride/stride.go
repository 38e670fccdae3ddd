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

// Package stride describes the step of a strided loop.
package stride

import (
	"fmt"
	"math/big"

	"go.uber.org/atomic"
)

// Stride is an immutable descriptor of a strided loop: the iterator advances
// by a fixed positive step from a given offset.  One descriptor is produced
// per strided loop and shared, via reference counting, among every generated
// construct which mentions it.  The count is atomic so shared descriptors
// may cross goroutine boundaries.
type Stride struct {
	references atomic.Int32
	stride     big.Int
	offset     big.Int
}

// New constructs a stride descriptor with a reference count of one.  The
// stride must be strictly positive.
func New(stride, offset big.Int) *Stride {
	if stride.Sign() <= 0 {
		panic(fmt.Sprintf("stride must be positive (got %s)", stride.String()))
	}
	//
	p := &Stride{}
	p.references.Store(1)
	p.stride.Set(&stride)
	p.offset.Set(&offset)
	//
	return p
}

// New64 constructs a stride descriptor from native integers.
func New64(stride, offset int64) *Stride {
	return New(*big.NewInt(stride), *big.NewInt(offset))
}

// Stride returns the step of this descriptor.
func (p *Stride) Stride() big.Int {
	var val big.Int
	val.Set(&p.stride)
	//
	return val
}

// Offset returns the offset of this descriptor.
func (p *Stride) Offset() big.Int {
	var val big.Int
	val.Set(&p.offset)
	//
	return val
}

// Copy shares this descriptor with a further owner, returning the same
// logical value rather than a duplicate.
func (p *Stride) Copy() *Stride {
	p.references.Inc()
	//
	return p
}

// Release drops one owner's reference, reporting whether this was the last
// reference (after which the descriptor must no longer be used).
func (p *Stride) Release() bool {
	return p.references.Dec() == 0
}

// References returns the current number of owners.
func (p *Stride) References() int32 {
	return p.references.Load()
}

func (p *Stride) String() string {
	return fmt.Sprintf("%s*k+%s", p.stride.String(), p.offset.String())
}
