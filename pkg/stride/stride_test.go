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
package stride

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrideSharing(t *testing.T) {
	s := New64(4, 1)
	require.Equal(t, int32(1), s.References())
	// Share with a second owner
	shared := s.Copy()
	require.Same(t, s, shared)
	require.Equal(t, int32(2), s.References())
	// First release keeps the descriptor alive
	assert.False(t, s.Release())
	assert.Equal(t, int32(1), s.References())
	// Second release drops it
	assert.True(t, shared.Release())
}

func TestStrideValues(t *testing.T) {
	s := New64(3, -2)
	//
	stride := s.Stride()
	offset := s.Offset()
	assert.Equal(t, int64(3), stride.Int64())
	assert.Equal(t, int64(-2), offset.Int64())
	//
	assert.Equal(t, "3*k+-2", s.String())
}

func TestStrideValuesAreCopies(t *testing.T) {
	s := New64(2, 0)
	// Mutating the returned value must not touch the descriptor
	stride := s.Stride()
	stride.SetInt64(17)
	//
	again := s.Stride()
	assert.Equal(t, int64(2), again.Int64())
}

func TestStrideMustBePositive(t *testing.T) {
	assert.Panics(t, func() { New64(0, 0) })
	assert.Panics(t, func() { New64(-3, 0) })
}
