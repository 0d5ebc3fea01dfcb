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
	"reflect"
	"unsafe"
)

// TypedRef is a non-owning, dynamic-dispatch typed reference: the pair
// (descriptor, byte-slice). It is cheap to copy (one interface value + one
// slice header) and is the ABI the codec uses to walk arbitrary typed
// storage without knowing the concrete Go type at compile time.
type TypedRef struct {
	desc  Descriptor
	bytes []byte
}

// NewTypedRef builds a TypedRef over v, which must be an addressable
// reflect.Value (e.g. obtained via reflect.ValueOf(ptr).Elem()) whose type
// has a registered descriptor.
func NewTypedRef(v reflect.Value) (TypedRef, error) {
	desc, err := DescriptorOf(v.Type())
	if err != nil {
		return TypedRef{}, err
	}
	if !v.CanAddr() {
		// Fall back to a throwaway addressable copy; writes through this
		// ref then do not observe back into the caller's value, which is
		// only safe for read-only use. Callers that need write access must
		// pass an addressable value.
		addr := reflect.New(v.Type())
		addr.Elem().Set(v)
		v = addr.Elem()
	}
	ptr := unsafe.Pointer(v.UnsafeAddr())
	return newTypedRefRaw(desc, ptr), nil
}

func newTypedRefRaw(desc Descriptor, ptr unsafe.Pointer) TypedRef {
	size := desc.Size()
	var bytes []byte
	if size > 0 {
		bytes = unsafe.Slice((*byte)(ptr), size)
	}
	return TypedRef{desc: desc, bytes: bytes}
}

// TypedRefOf constructs a TypedRef directly from a Go pointer *T, filling in
// T's registered descriptor automatically.
func TypedRefOf[T any](v *T) (TypedRef, error) {
	t := reflect.TypeOf(*v)
	desc, err := DescriptorOf(t)
	if err != nil {
		return TypedRef{}, err
	}
	return newTypedRefRaw(desc, unsafe.Pointer(v)), nil
}

// Category returns the descriptor's tagged-union discriminant.
func (r TypedRef) Category() Category { return r.desc.Category() }

// Descriptor returns the underlying Descriptor.
func (r TypedRef) Descriptor() Descriptor { return r.desc }

// Bytes returns the raw byte slice this ref points into. Its length always
// equals r.desc.Size().
func (r TypedRef) Bytes() []byte { return r.bytes }

// Get returns a typed reference into the same storage as r, requiring that
// r's descriptor actually describes T. A type-mismatched Get is a
// programmer error and panics rather than returning an error.
func Get[T any](r TypedRef) *T {
	var zero T
	want := reflect.TypeOf(zero)
	if r.desc.NativeType() != want {
		panic(&TypeMismatchError{Want: want.String(), Got: r.desc.NativeType().String()})
	}
	if len(r.bytes) == 0 {
		var z T
		return &z
	}
	return (*T)(unsafe.Pointer(&r.bytes[0]))
}

// reflectValue reconstructs a reflect.Value over r's storage, addressable
// and settable, typed according to r's native type. Used internally by the
// codec where operating through reflect is more convenient than raw bytes
// (slices, maps, records).
func (r TypedRef) reflectValue() reflect.Value {
	t := r.desc.NativeType()
	if len(r.bytes) == 0 {
		return reflect.New(t).Elem()
	}
	return reflect.NewAt(t, unsafe.Pointer(&r.bytes[0])).Elem()
}
