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

// EnumDescriptor is the CategoryEnum union arm: a 32-bit integer-backed
// enumeration with a bidirectional int<->name map.
type EnumDescriptor struct {
	baseDescriptor
	nameToInt map[string]int32
	intToName map[int32]string
}

// NewEnumDescriptor builds an EnumDescriptor for Go type t (expected to be
// an int32-backed named type) from its value->name table.
func NewEnumDescriptor(t reflect.Type, values map[int32]string) *EnumDescriptor {
	d := &EnumDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryEnum),
		nameToInt:      make(map[string]int32, len(values)),
		intToName:      make(map[int32]string, len(values)),
	}
	for v, name := range values {
		d.intToName[v] = name
		d.nameToInt[name] = v
	}
	return d
}

// NameOf returns the registered name for v, or ("", false) if unknown.
func (d *EnumDescriptor) NameOf(v int32) (string, bool) {
	name, ok := d.intToName[v]
	return name, ok
}

// ValueOf returns the registered int value for name, or (0, false).
func (d *EnumDescriptor) ValueOf(name string) (int32, bool) {
	v, ok := d.nameToInt[name]
	return v, ok
}
