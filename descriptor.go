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

// Category is the closed tagged-union discriminant every Descriptor carries.
// The set is closed by design: a type switch over Category is exhaustive,
// which is why the codec dispatches on it instead of a virtual table.
type Category uint8

const (
	CategoryScalar Category = iota
	CategoryString
	CategoryEnum
	CategoryDynSeq
	CategoryFixSeq
	CategorySet
	CategoryMap
	CategoryRecord
	CategoryOwningPtrRecord
	CategoryTypeErased
)

func (c Category) String() string {
	switch c {
	case CategoryScalar:
		return "scalar"
	case CategoryString:
		return "string"
	case CategoryEnum:
		return "enum"
	case CategoryDynSeq:
		return "dynseq"
	case CategoryFixSeq:
		return "fixseq"
	case CategorySet:
		return "set"
	case CategoryMap:
		return "map"
	case CategoryRecord:
		return "record"
	case CategoryOwningPtrRecord:
		return "owning_ptr_record"
	case CategoryTypeErased:
		return "type_erased"
	default:
		return "unknown"
	}
}

// Descriptor is the runtime object describing a host Go type's structure
// and operations. Every descriptor carries size, alignment, and the native
// type identity in addition to its category-specific union arm; the arm is
// reached by a type assertion on the concrete descriptor type, mirroring the
// teacher's Serializer-interface dispatch (see type.go's createSerializer
// switch) generalized from "how to (de)serialize" to "what structural shape
// does this type have".
type Descriptor interface {
	// Size is sizeof(T) for the host type this descriptor describes.
	Size() uintptr
	// Align is the host type's required alignment.
	Align() uintptr
	// NativeType is the opaque native-type-identity token: Go's own
	// reflect.Type already satisfies the uniqueness/comparability required
	// of this token, so no separate wrapper type is introduced.
	NativeType() reflect.Type
	// Category returns the tagged-union discriminant.
	Category() Category
}

// baseDescriptor is embedded by every concrete descriptor to supply the
// common Size/Align/NativeType/Category plumbing.
type baseDescriptor struct {
	size     uintptr
	align    uintptr
	native   reflect.Type
	category Category
}

func (d *baseDescriptor) Size() uintptr          { return d.size }
func (d *baseDescriptor) Align() uintptr         { return d.align }
func (d *baseDescriptor) NativeType() reflect.Type { return d.native }
func (d *baseDescriptor) Category() Category     { return d.category }

func newBaseDescriptor(t reflect.Type, cat Category) baseDescriptor {
	return baseDescriptor{
		size:     t.Size(),
		align:    uintptr(t.Align()),
		native:   t,
		category: cat,
	}
}
