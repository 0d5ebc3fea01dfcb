// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metabin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarUint32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 63, 127, 128, 16383, 16384, 1 << 20, 1<<32 - 1}
	for _, v := range values {
		buf := NewByteBuffer()
		buf.WriteVarUint32(v)
		got, err := WrapByteBuffer(buf.Bytes()).ReadVarUint32()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarUint64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 1 << 40, 1<<64 - 1}
	for _, v := range values {
		buf := NewByteBuffer()
		buf.WriteVarUint64(v)
		got, err := WrapByteBuffer(buf.Bytes()).ReadVarUint64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarInt32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 10, -1000, 55555, -55555, 1<<31 - 1, -(1 << 31)}
	for _, v := range values {
		buf := NewByteBuffer()
		buf.WriteVarInt32(v)
		got, err := WrapByteBuffer(buf.Bytes()).ReadVarInt32()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

// TestVarintLengthInvariant verifies the encoded length stays within
// [1, ceil(bitWidth/7)] bytes and that small magnitudes collapse to 1 byte.
func TestVarintLengthInvariant(t *testing.T) {
	lengthOfUint32 := func(v uint32) int {
		buf := NewByteBuffer()
		buf.WriteVarUint32(v)
		return buf.Len()
	}
	lengthOfInt32 := func(v int32) int {
		buf := NewByteBuffer()
		buf.WriteVarInt32(v)
		return buf.Len()
	}

	require.Equal(t, 1, lengthOfInt32(10))
	require.Equal(t, 2, lengthOfInt32(-1000))
	require.Equal(t, 3, lengthOfInt32(55555))

	for _, v := range []uint32{0, 1, 100, 1 << 20, 1<<32 - 1} {
		n := lengthOfUint32(v)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 5)
	}
	for v := int32(-63); v < 64; v++ {
		require.Equal(t, 1, lengthOfInt32(v))
	}
}

func TestVarintMaxGroups(t *testing.T) {
	buf := NewByteBuffer()
	buf.WriteVarUint32(1<<32 - 1)
	require.LessOrEqual(t, buf.Len(), maxGroupsU32)

	buf64 := NewByteBuffer()
	buf64.WriteVarUint64(1<<64 - 1)
	require.LessOrEqual(t, buf64.Len(), maxGroupsU64)
}
