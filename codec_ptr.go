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

import "fmt"

// encodeOwningPtr writes the 32-bit name hash of the pointer's dynamic
// target type, or 0 for a null pointer, then recurses into the pointee when
// non-null.
func (c *Codec) encodeOwningPtr(buf *ByteBuffer, ref TypedRef) error {
	pd := ref.Descriptor().(*OwningPtrRecordDescriptor)
	v := ref.reflectValue()
	targetRef, ok := pd.AsPointer(v)
	if !ok {
		buf.WriteUint32Raw(0)
		return nil
	}
	dynamic, ok := targetRef.Descriptor().(*RecordDescriptor)
	if !ok {
		dynamic = pd.Target
	}
	buf.WriteUint32Raw(dynamic.NameHash)
	return c.encodeValue(buf, targetRef)
}

// decodeOwningPtr reads the dynamic-type hash; 0 yields a left-nil pointer,
// otherwise resolves the hash in the registry, allocates a fresh value of
// that dynamic type, assigns it into the pointer slot, and recurses. Since a
// Go *T slot can only ever hold a *T (see OwningPtrRecordDescriptor's doc
// comment), the resolved hash must name the pointer's own Target record.
func (c *Codec) decodeOwningPtr(buf *ByteBuffer, ref TypedRef) error {
	pd := ref.Descriptor().(*OwningPtrRecordDescriptor)
	hash, err := buf.ReadUint32Raw()
	if err != nil {
		return err
	}
	if hash == 0 {
		return nil
	}
	dynamic, err := LookupByHash(hash)
	if err != nil {
		return err
	}
	if dynamic != pd.Target {
		return fmt.Errorf("metabin: owning pointer to %q cannot hold wire type %q; use an interface{} (CategoryTypeErased) field for polymorphic pointers", pd.Target.Name, dynamic.Name)
	}
	v := ref.reflectValue()
	targetRef := pd.AssignNew(v, dynamic)
	return c.decodeValue(buf, targetRef)
}

// encodeTypeErased shares OwningPtrRecord's wire form exactly: the dynamic
// type's hash, then the recursive encoding.
func (c *Codec) encodeTypeErased(buf *ByteBuffer, ref TypedRef) error {
	td := ref.Descriptor().(*TypeErasedDescriptor)
	v := ref.reflectValue()
	dynamicDesc, ok := td.TargetType(v)
	if !ok {
		buf.WriteUint32Raw(0)
		return nil
	}
	dynamic, ok := dynamicDesc.(*RecordDescriptor)
	if !ok {
		return &RegistryCollisionError{Name: v.Type().String(), Reason: "type-erased value does not hold a record"}
	}
	targetRef, _ := td.Target(v)
	buf.WriteUint32Raw(dynamic.NameHash)
	return c.encodeValue(buf, targetRef)
}

func (c *Codec) decodeTypeErased(buf *ByteBuffer, ref TypedRef) error {
	td := ref.Descriptor().(*TypeErasedDescriptor)
	hash, err := buf.ReadUint32Raw()
	if err != nil {
		return err
	}
	if hash == 0 {
		return nil
	}
	dynamic, err := LookupByHash(hash)
	if err != nil {
		return err
	}
	v := ref.reflectValue()
	targetRef := td.AssignNew(v, dynamic)
	return c.decodeValue(buf, targetRef)
}
