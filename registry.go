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
	"reflect"
	"sync"
)

// registry is the process-wide type descriptor registry: a translation
// table between a host type and its descriptor across three keys
// (native-type-identity, stable name, 32-bit non-zero hash of that name).
// Registration and lookups are both serialized by the same mutex; lookups
// take it on every call, including after process init.
type registry struct {
	mu sync.Mutex

	byNative map[reflect.Type]Descriptor
	byName   map[string]*RecordDescriptor
	byHash   map[uint32]*RecordDescriptor
}

var global = &registry{
	byNative: make(map[reflect.Type]Descriptor),
	byName:   make(map[string]*RecordDescriptor),
	byHash:   make(map[uint32]*RecordDescriptor),
}

// RegisterRecord declares a record type T's descriptor under the process-
// wide registry. Called once per record type during init; it panics on any
// collision (name, native identity, or hash) with a prior registration, and
// on a flattened field count above 64.
func RegisterRecord[T any](name string, version int8, infoFn InfoFunc) *RecordDescriptor {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		panic(&RegistryCollisionError{Name: name, Reason: "RegisterRecord requires a concrete struct type parameter"})
	}

	desc := newRecordDescriptor(t, name, version, infoFn)
	for v := int8(0); v <= version; v++ {
		info := desc.infoForVersion(v)
		desc.validateOffsets(v, info)
	}

	headers := desc.CurrentHeaders()
	members := desc.AllMembers(headers)
	bases := desc.AllBases(headers)
	if n := len(members) + len(bases); n > 64 {
		panic(&TooManyFieldsError{Name: name, Count: n})
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if _, exists := global.byNative[t]; exists {
		panic(&RegistryCollisionError{Name: name, Reason: fmt.Sprintf("native type %s already registered", t)})
	}
	if _, exists := global.byName[name]; exists {
		panic(&RegistryCollisionError{Name: name, Reason: "name already registered"})
	}
	if other, exists := global.byHash[desc.NameHash]; exists {
		panic(&RegistryCollisionError{Name: name, Reason: fmt.Sprintf("hash %#x collides with record %q", desc.NameHash, other.Name)})
	}

	global.byNative[t] = desc
	global.byName[name] = desc
	global.byHash[desc.NameHash] = desc
	return desc
}

// registerBuiltin installs a non-record descriptor (scalar/string/seq/
// set/map/ptr/type-erased) under its native-type-identity key only — those
// categories have no stable wire name, so only native-identity lookup
// applies to them.
func registerBuiltin(t reflect.Type, d Descriptor) Descriptor {
	global.mu.Lock()
	defer global.mu.Unlock()
	if existing, ok := global.byNative[t]; ok {
		return existing
	}
	global.byNative[t] = d
	return d
}

// LookupByName resolves a record by its registered stable name.
func LookupByName(name string) (*RecordDescriptor, error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	d, ok := global.byName[name]
	if !ok {
		return nil, &UnknownRecordError{Hash: nameHash(name)}
	}
	return d, nil
}

// LookupByHash resolves a record by its 32-bit wire name hash.
func LookupByHash(hash uint32) (*RecordDescriptor, error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	d, ok := global.byHash[hash]
	if !ok {
		return nil, &UnknownRecordError{Hash: hash}
	}
	return d, nil
}

// LookupByNativeType resolves any registered descriptor by its Go
// reflect.Type.
func LookupByNativeType(t reflect.Type) (Descriptor, error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	d, ok := global.byNative[t]
	if !ok {
		return nil, fmt.Errorf("metabin: type %s not registered", t)
	}
	return d, nil
}

// DescriptorOf returns t's descriptor, registering a structural (non-
// record) descriptor for it on demand if t is a scalar/string/slice/array/
// map type this engine knows how to describe reflectively. Record types
// must have been registered explicitly via RegisterRecord beforehand.
func DescriptorOf(t reflect.Type) (Descriptor, error) {
	global.mu.Lock()
	if d, ok := global.byNative[t]; ok {
		global.mu.Unlock()
		return d, nil
	}
	global.mu.Unlock()

	if d := descriptorForScalarType(t); d != nil {
		return registerBuiltin(t, d), nil
	}
	if t == stringGoType {
		return registerBuiltin(t, newStringDescriptor()), nil
	}

	switch t.Kind() {
	case reflect.Slice:
		elem, err := DescriptorOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return registerBuiltin(t, newDynSeqDescriptor(t, elem)), nil
	case reflect.Array:
		elem, err := DescriptorOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return registerBuiltin(t, newFixSeqDescriptor(t, elem)), nil
	case reflect.Map:
		if isSetValueType(t.Elem()) {
			elem, err := DescriptorOf(t.Key())
			if err != nil {
				return nil, err
			}
			return registerBuiltin(t, newSetDescriptor(t, elem, t.Elem().Kind() != reflect.Struct)), nil
		}
		key, err := DescriptorOf(t.Key())
		if err != nil {
			return nil, err
		}
		value, err := DescriptorOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return registerBuiltin(t, newMapDescriptor(t, key, value)), nil
	case reflect.Ptr:
		elemT := t.Elem()
		elemDesc, err := DescriptorOf(elemT)
		if err != nil {
			return nil, err
		}
		recordDesc, ok := elemDesc.(*RecordDescriptor)
		if !ok {
			return nil, fmt.Errorf("metabin: owning pointers are only supported to registered records, got *%s", elemT)
		}
		return registerBuiltin(t, newOwningPtrRecordDescriptor(t, recordDesc)), nil
	case reflect.Interface:
		return registerBuiltin(t, newTypeErasedDescriptor(t)), nil
	}

	return nil, fmt.Errorf("metabin: type %s not registered and has no structural descriptor", t)
}

// isSetValueType reports whether a map's value type marks it as a Set under
// this engine's map-backed Set/MultiSet convention (setdesc.go): only an
// empty struct{} value type does. Integer-valued maps are described as
// ordinary maps; RegisterSet is how one becomes a MultiSet.
func isSetValueType(valueType reflect.Type) bool {
	if valueType.Kind() == reflect.Struct && valueType.NumField() == 0 {
		return true
	}
	switch valueType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return false // ambiguous with a genuine map[K]intN; callers needing
		// Multiset semantics should register explicitly via RegisterSet.
	}
	return false
}

// RegisterSet explicitly marks reflect.Type t (a map[K]struct{} or
// map[K]intN) as a Set or MultiSet descriptor, resolving the ambiguity
// isSetValueType leaves for integer-valued maps.
func RegisterSet(t reflect.Type, multi bool) (*SetDescriptor, error) {
	if t.Kind() != reflect.Map {
		return nil, fmt.Errorf("metabin: RegisterSet requires a map type, got %s", t)
	}
	elem, err := DescriptorOf(t.Key())
	if err != nil {
		return nil, err
	}
	d := newSetDescriptor(t, elem, multi)
	registered := registerBuiltin(t, d)
	sd, ok := registered.(*SetDescriptor)
	if !ok {
		return nil, fmt.Errorf("metabin: RegisterSet: %s is already registered as a %s descriptor", t, registered.Category())
	}
	return sd, nil
}
