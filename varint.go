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

// Varint encoding for u32/u64: 7-bit groups, little-endian, top bit of each
// byte marks "another byte follows" — except the final group, which is
// known by position (the maxGroups-th byte) and so spends no bit on
// continuation, using all 8 bits as data. This caps the worst case at
// ceil((bitWidth-8)/7)+1 bytes: 5 for u32, 9 for u64.

const (
	maxGroupsU32 = 5
	maxGroupsU64 = 9
)

func (b *ByteBuffer) WriteVarUint32(v uint32) { writeVarUint(b, uint64(v), maxGroupsU32) }
func (b *ByteBuffer) WriteVarUint64(v uint64) { writeVarUint(b, v, maxGroupsU64) }

func writeVarUint(b *ByteBuffer, v uint64, maxGroups int) {
	for i := 0; i < maxGroups-1; i++ {
		if v < 0x80 {
			b.WriteByte_(byte(v))
			return
		}
		b.WriteByte_(byte(v&0x7f) | 0x80)
		v >>= 7
	}
	// final group: no continuation bit needed, full 8 bits of data.
	b.WriteByte_(byte(v))
}

func (b *ByteBuffer) ReadVarUint32() (uint32, error) {
	v, err := readVarUint(b, maxGroupsU32)
	return uint32(v), err
}

func (b *ByteBuffer) ReadVarUint64() (uint64, error) {
	return readVarUint(b, maxGroupsU64)
}

func readVarUint(b *ByteBuffer, maxGroups int) (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxGroups-1; i++ {
		byt, err := b.ReadByte_()
		if err != nil {
			return 0, err
		}
		if byt < 0x80 {
			return result | uint64(byt)<<shift, nil
		}
		result |= uint64(byt&0x7f) << shift
		shift += 7
	}
	byt, err := b.ReadByte_()
	if err != nil {
		return 0, err
	}
	result |= uint64(byt) << shift
	return result, nil
}

// Signed varint: zigzag-map into the same final-byte-optimized unsigned
// scheme above, rather than a terminal sign bit — the unambiguous,
// ecosystem-standard choice for variable-length signed integers.
func zigzag32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }
func unzigzag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

func zigzag64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func unzigzag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

func (b *ByteBuffer) WriteVarInt32(v int32) { b.WriteVarUint32(zigzag32(v)) }
func (b *ByteBuffer) ReadVarInt32() (int32, error) {
	v, err := b.ReadVarUint32()
	return unzigzag32(v), err
}

func (b *ByteBuffer) WriteVarInt64(v int64) { b.WriteVarUint64(zigzag64(v)) }
func (b *ByteBuffer) ReadVarInt64() (int64, error) {
	v, err := b.ReadVarUint64()
	return unzigzag64(v), err
}
