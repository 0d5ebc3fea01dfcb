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
	"fmt"
	"unsafe"
)

// Record wire layout: [header-list] [presence-bitmap] [present-member
// bodies...]. This implementation computes one flat bitmap over the
// record's fully flattened all-members list (flatten.go already inlines
// every base's members into that single list); a transitively inherited
// field and a directly declared one are therefore indistinguishable bitmap
// entries, not nested per-base sub-bitmaps. See DESIGN.md for why this
// resolves the ambiguity over how "bases counted as single units" composes
// with "flattened all-members".

// writeHeaders emits headers in the traversal order RecordDescriptor.
// CurrentHeaders already computed it in (name-hash, version) pairs.
func writeHeaders(buf *ByteBuffer, headers ClassHeaderList) {
	for _, h := range headers {
		buf.WriteUint32Raw(h.NameHash)
		buf.WriteInt8(h.Version)
	}
}

// readHeaders reconstructs the ClassHeaderList for d's own declared shape,
// walking depth-first over d's current bases (declared-base shape is assumed
// stable across versions, per flatten.go) and reading the actual (hash,
// version) pair the writer emitted at each position. A hash mismatch means
// the stream is desynchronized from what this reader's type expects.
func readHeaders(buf *ByteBuffer, d *RecordDescriptor) (ClassHeaderList, error) {
	visited := map[uint32]bool{}
	var list ClassHeaderList
	var walk func(rd *RecordDescriptor) error
	walk = func(rd *RecordDescriptor) error {
		if visited[rd.NameHash] {
			return nil
		}
		visited[rd.NameHash] = true

		hash, err := buf.ReadUint32Raw()
		if err != nil {
			return err
		}
		version, err := buf.ReadInt8()
		if err != nil {
			return err
		}
		if hash != rd.NameHash {
			return &UnknownRecordError{Hash: hash}
		}
		if version > rd.CurrentVersion {
			return fmt.Errorf("metabin: record %q was written at version %d, newer than this reader's current version %d", rd.Name, version, rd.CurrentVersion)
		}
		list = append(list, HeaderEntry{NameHash: hash, Version: version})

		info := rd.infoForVersion(rd.CurrentVersion)
		for _, b := range info.Bases {
			if err := walk(b.Desc); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(d); err != nil {
		return nil, err
	}
	return list, nil
}

// bitmapByteWidth returns the packed bitmap width for n flattened members,
// sized to the smallest of u8/u16/u32/u64 that fits; n above 64 is rejected
// at registration (TooManyFieldsError) and never reaches here.
func bitmapByteWidth(n int) int {
	switch {
	case n <= 8:
		return 1
	case n <= 16:
		return 2
	case n <= 32:
		return 4
	default:
		return 8
	}
}

func (c *Codec) encodeRecord(buf *ByteBuffer, ref TypedRef) error {
	rd := ref.Descriptor().(*RecordDescriptor)
	recv := recordBasePointer(ref)

	headers := rd.CurrentHeaders()
	writeHeaders(buf, headers)

	members := rd.AllMembers(headers)
	width := bitmapByteWidth(len(members))
	bitmapPos := buf.ReservePlaceholder(width)

	var bitmap uint64
	for i, m := range members {
		// The predicate sees the record that declares m (a base, for an
		// inherited member), not the top-level record.
		if !m.Member.Present(unsafe.Add(recv, m.Offset-m.Member.Offset)) {
			continue
		}
		fieldRef := flattenedFieldRef(m, recv)
		if c.skipDefaults && isDefaultValue(fieldRef.reflectValue()) {
			continue
		}
		bitmap |= 1 << uint(i)
		if err := c.encodeValue(buf, fieldRef); err != nil {
			return err
		}
	}

	patchBitmap(buf, bitmapPos, width, bitmap)
	return nil
}

func patchBitmap(buf *ByteBuffer, pos, width int, bitmap uint64) {
	switch width {
	case 1:
		buf.PatchByteAt(pos, byte(bitmap))
	case 2:
		buf.PatchUint16At(pos, uint16(bitmap))
	case 4:
		buf.PatchUint32At(pos, uint32(bitmap))
	default:
		buf.PatchUint64At(pos, bitmap)
	}
}

func readBitmap(buf *ByteBuffer, width int) (uint64, error) {
	switch width {
	case 1:
		v, err := buf.ReadByte_()
		return uint64(v), err
	case 2:
		v, err := buf.ReadUint16()
		return uint64(v), err
	case 4:
		v, err := buf.ReadUint32Raw()
		return uint64(v), err
	default:
		v, err := buf.ReadInt64()
		return uint64(v), err
	}
}

func (c *Codec) decodeRecord(buf *ByteBuffer, ref TypedRef) error {
	rd := ref.Descriptor().(*RecordDescriptor)
	recv := recordBasePointer(ref)

	headers, err := readHeaders(buf, rd)
	if err != nil {
		return err
	}

	members := rd.AllMembers(headers)
	width := bitmapByteWidth(len(members))
	bitmap, err := readBitmap(buf, width)
	if err != nil {
		return err
	}

	for i, m := range members {
		if bitmap&(1<<uint(i)) == 0 {
			continue
		}
		if !m.Member.Present(unsafe.Add(recv, m.Offset-m.Member.Offset)) {
			return &PredicateDisagreementError{Member: m.Name}
		}
		fieldRef := flattenedFieldRef(m, recv)
		if err := c.decodeValue(buf, fieldRef); err != nil {
			return err
		}
	}
	return nil
}

// flattenedFieldRef builds a TypedRef into a flattened member's storage,
// using its cumulative offset from the top-level record's own zero-address
// (FlattenedMember.Offset already sums every base's offset along the chain,
// unlike the raw Member.Offset it was derived from).
func flattenedFieldRef(m FlattenedMember, recv unsafe.Pointer) TypedRef {
	return newTypedRefRaw(m.Desc, unsafe.Add(recv, m.Offset))
}

// recordBasePointer recovers a record's own zero-address from its TypedRef.
// Bytes() is nil for a zero-size record (no fields at all), in which case
// no member offset can be nonzero either, so a nil base pointer is safe.
func recordBasePointer(ref TypedRef) unsafe.Pointer {
	bytes := ref.Bytes()
	if len(bytes) == 0 {
		return nil
	}
	return unsafe.Pointer(&bytes[0])
}
