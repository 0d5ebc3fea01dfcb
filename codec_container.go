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

import "reflect"

// DynSeq/Set/Map are u32-count-prefixed; FixSeq carries no count since its
// length is fixed by its descriptor.

func (c *Codec) encodeDynSeq(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*DynSeqDescriptor)
	v := ref.reflectValue()
	buf.WriteVarUint32(uint32(sd.Len(v)))
	it := sd.Iterate(v)
	for it.Next() {
		elemRef, err := NewTypedRef(it.Value())
		if err != nil {
			return err
		}
		if err := c.encodeValue(buf, elemRef); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) decodeDynSeq(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*DynSeqDescriptor)
	v := ref.reflectValue()
	n, err := buf.ReadVarUint32()
	if err != nil {
		return err
	}
	v.Set(reflect.MakeSlice(v.Type(), 0, int(n)))
	for i := uint32(0); i < n; i++ {
		elem := reflect.New(v.Type().Elem()).Elem()
		elemRef, err := NewTypedRef(elem)
		if err != nil {
			return err
		}
		if err := c.decodeValue(buf, elemRef); err != nil {
			return err
		}
		sd.PushBack(v, elem)
	}
	return nil
}

func (c *Codec) encodeFixSeq(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*FixSeqDescriptor)
	v := ref.reflectValue()
	it := sd.Iterate(v)
	for it.Next() {
		elemRef, err := NewTypedRef(it.Value())
		if err != nil {
			return err
		}
		if err := c.encodeValue(buf, elemRef); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) decodeFixSeq(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*FixSeqDescriptor)
	v := ref.reflectValue()
	for i := 0; i < sd.Len; i++ {
		elem := v.Index(i)
		elemRef, err := NewTypedRef(elem)
		if err != nil {
			return err
		}
		if err := c.decodeValue(buf, elemRef); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) encodeSet(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*SetDescriptor)
	v := ref.reflectValue()
	buf.WriteVarUint32(uint32(sd.Len(v)))
	it := sd.Iterate(v)
	for it.Next() {
		elemRef, err := NewTypedRef(it.Value())
		if err != nil {
			return err
		}
		if err := c.encodeValue(buf, elemRef); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) decodeSet(buf *ByteBuffer, ref TypedRef) error {
	sd := ref.Descriptor().(*SetDescriptor)
	v := ref.reflectValue()
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	n, err := buf.ReadVarUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		elem := reflect.New(v.Type().Key()).Elem()
		elemRef, err := NewTypedRef(elem)
		if err != nil {
			return err
		}
		if err := c.decodeValue(buf, elemRef); err != nil {
			return err
		}
		sd.Insert(v, elem)
	}
	return nil
}

func (c *Codec) encodeMap(buf *ByteBuffer, ref TypedRef) error {
	md := ref.Descriptor().(*MapDescriptor)
	v := ref.reflectValue()
	buf.WriteVarUint32(uint32(md.Len(v)))
	it := md.Iterate(v)
	for it.Next() {
		keyRef, err := NewTypedRef(it.Key())
		if err != nil {
			return err
		}
		if err := c.encodeValue(buf, keyRef); err != nil {
			return err
		}
		valueRef, err := NewTypedRef(it.Value())
		if err != nil {
			return err
		}
		if err := c.encodeValue(buf, valueRef); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) decodeMap(buf *ByteBuffer, ref TypedRef) error {
	md := ref.Descriptor().(*MapDescriptor)
	v := ref.reflectValue()
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	n, err := buf.ReadVarUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		key := reflect.New(v.Type().Key()).Elem()
		keyRef, err := NewTypedRef(key)
		if err != nil {
			return err
		}
		if err := c.decodeValue(buf, keyRef); err != nil {
			return err
		}
		value := reflect.New(v.Type().Elem()).Elem()
		valueRef, err := NewTypedRef(value)
		if err != nil {
			return err
		}
		if err := c.decodeValue(buf, valueRef); err != nil {
			return err
		}
		md.Insert(v, key, value)
	}
	return nil
}
