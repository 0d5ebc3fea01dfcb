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
	"io"
	"math"
	"reflect"
)

// Codec is the optimistic binary codec: varint integers, float8-compressed
// float32, per-record default-skipping bitmaps, and class-header schema
// evolution. Its three behavior toggles (default-skipping, float8
// compression, NaN/infinity float8 eligibility) are functional options on
// NewCodec (the CompileOption/UnmarshalOption shape used elsewhere for
// parser/compiler configuration) rather than Go build tags, since none of
// the three change a type's in-memory layout.
type Codec struct {
	skipDefaults      bool
	compressFloat8    bool
	float8AllowNaNInf bool
}

// Option configures a Codec.
type Option func(*Codec)

// SkipDefaultMembers toggles per-record default-skipping (on by default).
func SkipDefaultMembers(enabled bool) Option {
	return func(c *Codec) { c.skipDefaults = enabled }
}

// CompressFloat8 toggles the 2-byte float32 compact encoding (on by default).
func CompressFloat8(enabled bool) Option {
	return func(c *Codec) { c.compressFloat8 = enabled }
}

// Float8AllowNaNInf sets the allowNaNInf flag passed to compressFloat8 (off by
// default, matching the source's commented-out
// FLOAT8_SUPPORTS_NAN_AND_INFINITY). With the float8 exponent range of
// [-3, 4], NaN, infinity and denormals are never compressible, so the flag
// does not change the encoded output.
func Float8AllowNaNInf(enabled bool) Option {
	return func(c *Codec) { c.float8AllowNaNInf = enabled }
}

// NewCodec builds a Codec with the default-on configuration
// (SkipDefaultMembers=true, CompressFloat8=true, Float8AllowNaNInf=false),
// then applies opts.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{skipDefaults: true, compressFloat8: true, float8AllowNaNInf: false}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultCodec is used by the package-level WriteBinary/ReadBinary
// convenience entry points, which most callers never need to customize.
var defaultCodec = NewCodec()

// WriteBinary encodes value (a pointer to a registered type, or a pointer to
// a scalar/container type with a structural descriptor) to w using the
// package-wide default codec configuration. The whole-stream format is just
// the recursive encoding of value's descriptor — no outer framing.
func WriteBinary(w io.Writer, value any) error { return defaultCodec.WriteBinary(w, value) }

// ReadBinary decodes into out (a pointer) from r using the package-wide
// default codec configuration.
func ReadBinary(r io.Reader, out any) error { return defaultCodec.ReadBinary(r, out) }

// WriteBinary encodes value into w. Because bitmap placeholders require
// seeking back to patch once the fields they cover are known, encoding
// always happens into an in-memory ByteBuffer first and is flushed to w in
// one Write call, so w itself never needs to support seeking.
func (c *Codec) WriteBinary(w io.Writer, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("metabin: WriteBinary requires a non-nil pointer, got %T", value)
	}
	ref, err := NewTypedRef(rv.Elem())
	if err != nil {
		return err
	}
	buf := NewByteBuffer()
	if err := c.encodeValue(buf, ref); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// ReadBinary decodes a value previously written by WriteBinary from r into
// out (a pointer).
func (c *Codec) ReadBinary(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("metabin: ReadBinary requires a non-nil pointer, got %T", out)
	}
	ref, err := NewTypedRef(rv.Elem())
	if err != nil {
		return err
	}
	buf := WrapByteBuffer(data)
	return c.decodeValue(buf, ref)
}

// encodeValue dispatches on ref's category to the matching per-category wire
// encoding. This is the single switch every recursive call funnels through,
// generalized from "serializer kind" to "descriptor Category".
func (c *Codec) encodeValue(buf *ByteBuffer, ref TypedRef) error {
	switch ref.Category() {
	case CategoryScalar:
		return c.encodeScalar(buf, ref)
	case CategoryString:
		return c.encodeString(buf, ref)
	case CategoryEnum:
		return c.encodeEnum(buf, ref)
	case CategoryDynSeq:
		return c.encodeDynSeq(buf, ref)
	case CategoryFixSeq:
		return c.encodeFixSeq(buf, ref)
	case CategorySet:
		return c.encodeSet(buf, ref)
	case CategoryMap:
		return c.encodeMap(buf, ref)
	case CategoryRecord:
		return c.encodeRecord(buf, ref)
	case CategoryOwningPtrRecord:
		return c.encodeOwningPtr(buf, ref)
	case CategoryTypeErased:
		return c.encodeTypeErased(buf, ref)
	default:
		return fmt.Errorf("metabin: unhandled category %v", ref.Category())
	}
}

func (c *Codec) decodeValue(buf *ByteBuffer, ref TypedRef) error {
	switch ref.Category() {
	case CategoryScalar:
		return c.decodeScalar(buf, ref)
	case CategoryString:
		return c.decodeString(buf, ref)
	case CategoryEnum:
		return c.decodeEnum(buf, ref)
	case CategoryDynSeq:
		return c.decodeDynSeq(buf, ref)
	case CategoryFixSeq:
		return c.decodeFixSeq(buf, ref)
	case CategorySet:
		return c.decodeSet(buf, ref)
	case CategoryMap:
		return c.decodeMap(buf, ref)
	case CategoryRecord:
		return c.decodeRecord(buf, ref)
	case CategoryOwningPtrRecord:
		return c.decodeOwningPtr(buf, ref)
	case CategoryTypeErased:
		return c.decodeTypeErased(buf, ref)
	default:
		return fmt.Errorf("metabin: unhandled category %v", ref.Category())
	}
}

func (c *Codec) encodeScalar(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*ScalarDescriptor)
	v := ref.reflectValue()
	switch sd.Kind {
	case ScalarBool:
		buf.WriteBool(v.Bool())
	case ScalarChar, ScalarI8:
		buf.WriteInt8(int8(v.Int()))
	case ScalarU8:
		buf.WriteByte_(byte(v.Uint()))
	case ScalarI16:
		buf.WriteInt16(int16(v.Int()))
	case ScalarU16:
		buf.WriteUint16(uint16(v.Uint()))
	case ScalarI32:
		buf.WriteVarInt32(int32(v.Int()))
	case ScalarU32:
		buf.WriteVarUint32(uint32(v.Uint()))
	case ScalarI64:
		buf.WriteVarInt64(v.Int())
	case ScalarU64:
		buf.WriteVarUint64(v.Uint())
	case ScalarF32:
		buf.WriteFloat32(float32(v.Float()), c.compressFloat8, c.float8AllowNaNInf)
	case ScalarF64:
		buf.WriteFloat64(v.Float())
	default:
		return fmt.Errorf("metabin: unhandled scalar kind %v", sd.Kind)
	}
	return nil
}

func (c *Codec) decodeScalar(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*ScalarDescriptor)
	v := ref.reflectValue()
	switch sd.Kind {
	case ScalarBool:
		b, err := buf.ReadBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case ScalarChar, ScalarI8:
		n, err := buf.ReadInt8()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case ScalarU8:
		n, err := buf.ReadByte_()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case ScalarI16:
		n, err := buf.ReadInt16()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case ScalarU16:
		n, err := buf.ReadUint16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case ScalarI32:
		n, err := buf.ReadVarInt32()
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case ScalarU32:
		n, err := buf.ReadVarUint32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case ScalarI64:
		n, err := buf.ReadVarInt64()
		if err != nil {
			return err
		}
		v.SetInt(n)
	case ScalarU64:
		n, err := buf.ReadVarUint64()
		if err != nil {
			return err
		}
		v.SetUint(n)
	case ScalarF32:
		f, err := c.readFloat32(buf)
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
	case ScalarF64:
		f, err := buf.ReadFloat64()
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("metabin: unhandled scalar kind %v", sd.Kind)
	}
	return nil
}

// readFloat32 mirrors the write side's two-form dispatch: peek the
// discriminator byte that would follow a compact encoding's first byte; if
// it's 0xFF, decode the compact form. Otherwise the two bytes already read
// are the mantissa low byte and the exponent byte of WriteFloat32's raw
// layout, and the remaining two bytes (mantissa mid byte, then mantissa
// high bits packed with the sign bit) complete the value.
func (c *Codec) readFloat32(buf *ByteBuffer) (float32, error) {
	first, err := buf.ReadByte_()
	if err != nil {
		return 0, err
	}
	second, err := buf.ReadByte_()
	if err != nil {
		return 0, err
	}
	if second == float8Discriminator {
		return uncompressFloat8(first), nil
	}
	rest, err := buf.ReadBinary(2)
	if err != nil {
		return 0, err
	}
	bits := uint32(first) | uint32(second)<<23 | uint32(rest[0])<<8 | uint32(rest[1]&0x7f)<<16 | uint32(rest[1]>>7)<<31
	return math.Float32frombits(bits), nil
}

func (c *Codec) encodeEnum(buf *ByteBuffer, ref TypedRef) error {
	v := ref.reflectValue()
	buf.WriteVarInt32(int32(v.Int()))
	return nil
}

func (c *Codec) decodeEnum(buf *ByteBuffer, ref TypedRef) error {
	n, err := buf.ReadVarInt32()
	if err != nil {
		return err
	}
	ref.reflectValue().SetInt(int64(n))
	return nil
}

func (c *Codec) encodeString(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*StringDescriptor)
	view := sd.GetView(ref)
	buf.WriteVarUint32(uint32(len(view)))
	buf.WriteBinary(view)
	return nil
}

func (c *Codec) decodeString(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*StringDescriptor)
	n, err := buf.ReadVarUint32()
	if err != nil {
		return err
	}
	data, err := buf.ReadBinary(int(n))
	if err != nil {
		return err
	}
	sd.SetFromView(ref, data)
	return nil
}
