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

// TypeErasedDescriptor is the CategoryTypeErased union arm: a container
// that can hold any registered subtype, sharing its wire form with
// OwningPtrRecord but not constrained to one target record — the stored
// dynamic type is resolved purely from the wire hash. In Go this is
// realized over an interface{}-shaped field.
type TypeErasedDescriptor struct {
	baseDescriptor
}

func newTypeErasedDescriptor(t reflect.Type) *TypeErasedDescriptor {
	return &TypeErasedDescriptor{baseDescriptor: newBaseDescriptor(t, CategoryTypeErased)}
}

// TargetType returns the descriptor of whatever concrete type v currently
// holds, or (nil, false) if v is nil/empty.
func (d *TypeErasedDescriptor) TargetType(v reflect.Value) (Descriptor, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	desc, err := DescriptorOf(v.Type())
	if err != nil {
		return nil, false
	}
	return desc, true
}

// Target returns a TypedRef into the concrete value v currently holds. When
// the interface boxes a pointer (as AssignNew always produces), the ref
// points through it so writes are observed; otherwise the ref is read-only
// (NewTypedRef's non-addressable fallback).
func (d *TypeErasedDescriptor) Target(v reflect.Value) (TypedRef, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return TypedRef{}, false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return TypedRef{}, false
		}
		v = v.Elem()
	}
	ref, err := NewTypedRef(v)
	if err != nil {
		return TypedRef{}, false
	}
	return ref, true
}

// AssignNew stores a freshly constructed zero value of dynamicType's native
// type into the interface slot v, boxing a pointer so the returned TypedRef
// stays writable (an interface's own element is never addressable).
func (d *TypeErasedDescriptor) AssignNew(v reflect.Value, dynamicType Descriptor) TypedRef {
	instance := reflect.New(dynamicType.NativeType())
	v.Set(instance)
	ref, _ := NewTypedRef(instance.Elem())
	return ref
}
