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

// ScalarKind enumerates the primitive wire kinds (bool, char, i8, u8, i16,
// u16, i32, u32, i64, u64, f32, f64).
type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarChar
	ScalarI8
	ScalarU8
	ScalarI16
	ScalarU16
	ScalarI32
	ScalarU32
	ScalarI64
	ScalarU64
	ScalarF32
	ScalarF64
)

// ScalarDescriptor is the CategoryScalar union arm.
type ScalarDescriptor struct {
	baseDescriptor
	Kind ScalarKind
}

var scalarTable = []struct {
	typ  reflect.Type
	kind ScalarKind
}{
	{reflect.TypeOf(false), ScalarBool},
	{reflect.TypeOf(int8(0)), ScalarI8},
	{reflect.TypeOf(uint8(0)), ScalarU8},
	{reflect.TypeOf(int16(0)), ScalarI16},
	{reflect.TypeOf(uint16(0)), ScalarU16},
	{reflect.TypeOf(int32(0)), ScalarI32},
	{reflect.TypeOf(uint32(0)), ScalarU32},
	{reflect.TypeOf(int64(0)), ScalarI64},
	{reflect.TypeOf(uint64(0)), ScalarU64},
	{reflect.TypeOf(float32(0)), ScalarF32},
	{reflect.TypeOf(float64(0)), ScalarF64},
}

func newScalarDescriptor(t reflect.Type, kind ScalarKind) *ScalarDescriptor {
	return &ScalarDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryScalar),
		Kind:           kind,
	}
}

// descriptorForScalarType returns the built-in scalar descriptor for t, or
// nil if t is not one of the fixed scalar kinds.
func descriptorForScalarType(t reflect.Type) Descriptor {
	for _, e := range scalarTable {
		if e.typ == t {
			return newScalarDescriptor(t, e.kind)
		}
	}
	return nil
}
