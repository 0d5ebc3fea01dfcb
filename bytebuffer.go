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
	"encoding/binary"
	"math"
)

// ByteBuffer is an in-memory, growable byte buffer with independent
// write-append and read-cursor positions (WriteVarUint32/WriteBinary/
// ReadInt64/...). Every sink the codec writes to is buffered here first: the
// forward-seek write pattern (reserve the bitmap prefix, write fields, patch
// the bitmap afterward) requires a sink that supports seeking back, so
// non-seekable io.Writer destinations are satisfied unconditionally by never
// writing straight to them until a whole top-level value is done.
type ByteBuffer struct {
	buf []byte
	pos int
}

// NewByteBuffer returns an empty writable/readable buffer.
func NewByteBuffer() *ByteBuffer { return &ByteBuffer{} }

// WrapByteBuffer returns a buffer for reading pre-existing bytes (e.g. the
// contents read off an io.Reader by the caller).
func WrapByteBuffer(data []byte) *ByteBuffer { return &ByteBuffer{buf: data} }

// Bytes returns the buffer's full written contents.
func (b *ByteBuffer) Bytes() []byte { return b.buf }

// Len returns how many bytes have been written so far.
func (b *ByteBuffer) Len() int { return len(b.buf) }

// Remaining returns how many unread bytes are left for the read cursor.
func (b *ByteBuffer) Remaining() int { return len(b.buf) - b.pos }

func (b *ByteBuffer) WriteByte_(v uint8) { b.buf = append(b.buf, v) }

func (b *ByteBuffer) WriteBool(v bool) {
	if v {
		b.WriteByte_(1)
	} else {
		b.WriteByte_(0)
	}
}

func (b *ByteBuffer) WriteInt8(v int8) { b.WriteByte_(uint8(v)) }

func (b *ByteBuffer) WriteInt16(v int16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *ByteBuffer) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *ByteBuffer) WriteInt64(v int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *ByteBuffer) WriteUint32Raw(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *ByteBuffer) WriteFloat64(v float64) {
	b.WriteInt64(int64(math.Float64bits(v)))
}

// WriteBinary appends raw bytes with no length prefix (callers that need a
// length write it themselves; strings are treated as a DynSeq<byte>, which
// already carries its own u32 count).
func (b *ByteBuffer) WriteBinary(data []byte) { b.buf = append(b.buf, data...) }

// ReservePlaceholder appends n zero bytes and returns the position they
// start at, for later patching once the real value (e.g. a presence
// bitmap) is known.
func (b *ByteBuffer) ReservePlaceholder(n int) int {
	pos := len(b.buf)
	b.buf = append(b.buf, make([]byte, n)...)
	return pos
}

// PatchByteAt overwrites the byte at pos (previously reserved) with v.
func (b *ByteBuffer) PatchByteAt(pos int, v byte) { b.buf[pos] = v }

// PatchUint16At overwrites 2 little-endian bytes at pos.
func (b *ByteBuffer) PatchUint16At(pos int, v uint16) {
	binary.LittleEndian.PutUint16(b.buf[pos:pos+2], v)
}

// PatchUint32At overwrites 4 little-endian bytes at pos.
func (b *ByteBuffer) PatchUint32At(pos int, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[pos:pos+4], v)
}

// PatchUint64At overwrites 8 little-endian bytes at pos.
func (b *ByteBuffer) PatchUint64At(pos int, v uint64) {
	binary.LittleEndian.PutUint64(b.buf[pos:pos+8], v)
}

func (b *ByteBuffer) ReadByte_() (uint8, error) {
	if b.Remaining() < 1 {
		return 0, &TruncatedInputError{Needed: 1, Have: b.Remaining()}
	}
	v := b.buf[b.pos]
	b.pos++
	return v, nil
}

func (b *ByteBuffer) ReadBool() (bool, error) {
	v, err := b.ReadByte_()
	return v != 0, err
}

func (b *ByteBuffer) ReadInt8() (int8, error) {
	v, err := b.ReadByte_()
	return int8(v), err
}

func (b *ByteBuffer) ReadInt16() (int16, error) {
	if b.Remaining() < 2 {
		return 0, &TruncatedInputError{Needed: 2, Have: b.Remaining()}
	}
	v := binary.LittleEndian.Uint16(b.buf[b.pos:])
	b.pos += 2
	return int16(v), nil
}

func (b *ByteBuffer) ReadUint16() (uint16, error) {
	if b.Remaining() < 2 {
		return 0, &TruncatedInputError{Needed: 2, Have: b.Remaining()}
	}
	v := binary.LittleEndian.Uint16(b.buf[b.pos:])
	b.pos += 2
	return v, nil
}

func (b *ByteBuffer) ReadInt64() (int64, error) {
	if b.Remaining() < 8 {
		return 0, &TruncatedInputError{Needed: 8, Have: b.Remaining()}
	}
	v := binary.LittleEndian.Uint64(b.buf[b.pos:])
	b.pos += 8
	return int64(v), nil
}

func (b *ByteBuffer) ReadUint32Raw() (uint32, error) {
	if b.Remaining() < 4 {
		return 0, &TruncatedInputError{Needed: 4, Have: b.Remaining()}
	}
	v := binary.LittleEndian.Uint32(b.buf[b.pos:])
	b.pos += 4
	return v, nil
}

func (b *ByteBuffer) ReadFloat64() (float64, error) {
	v, err := b.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (b *ByteBuffer) ReadBinary(n int) ([]byte, error) {
	if b.Remaining() < n {
		return nil, &TruncatedInputError{Needed: n, Have: b.Remaining()}
	}
	out := b.buf[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}
