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

// OwningPtrRecordDescriptor is the CategoryOwningPtrRecord union arm: an
// owning pointer *T to a statically-known record type. The design notes'
// "(ptr, free_fn)" sketch is unnecessary in Go, which already has GC-backed
// owning pointers; AssignNew just stores a fresh *Target.
//
// A Go *T cannot hold a *Derived when declared as *Base — pointer types
// aren't covariant the way a C++ Base* is — so this category only models a
// monomorphic owning pointer (the dynamic type on the wire must always equal
// Target). Genuine polymorphic dispatch is instead carried by an
// interface{}-shaped field under CategoryTypeErased, which is Go's
// idiomatic equivalent of "pointer to polymorphic base".
type OwningPtrRecordDescriptor struct {
	baseDescriptor
	Target *RecordDescriptor
}

func newOwningPtrRecordDescriptor(t reflect.Type, target *RecordDescriptor) *OwningPtrRecordDescriptor {
	return &OwningPtrRecordDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryOwningPtrRecord),
		Target:         target,
	}
}

// AsPointer returns a TypedRef into the pointee if v (a reflect.Value of
// the pointer type) is non-nil, or the zero TypedRef and false if nil.
func (d *OwningPtrRecordDescriptor) AsPointer(v reflect.Value) (TypedRef, bool) {
	if v.IsNil() {
		return TypedRef{}, false
	}
	elemType := v.Elem().Type()
	desc, err := DescriptorOf(elemType)
	if err != nil {
		return TypedRef{}, false
	}
	ref, err := NewTypedRef(v.Elem())
	if err != nil {
		return TypedRef{}, false
	}
	_ = desc
	return ref, true
}

// AssignNew allocates a zero value of d.Target and stores its address into
// the pointer slot v, returning a TypedRef into the new storage. dynamicType
// is accepted for symmetry with TypeErasedDescriptor.AssignNew and must equal
// d.Target — see the type's doc comment on why this category cannot itself
// carry a different dynamic type the way CategoryTypeErased can.
func (d *OwningPtrRecordDescriptor) AssignNew(v reflect.Value, dynamicType *RecordDescriptor) TypedRef {
	instance := reflect.New(d.Target.NativeType())
	v.Set(instance)
	ref, _ := NewTypedRef(instance.Elem())
	return ref
}
