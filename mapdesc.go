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

// MapDescriptor is the CategoryMap union arm, exposing structural ops
// instead of wire ops directly.
type MapDescriptor struct {
	baseDescriptor
	Key   Descriptor
	Value Descriptor
}

func newMapDescriptor(t reflect.Type, key, value Descriptor) *MapDescriptor {
	return &MapDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryMap),
		Key:            key,
		Value:          value,
	}
}

func (d *MapDescriptor) Len(v reflect.Value) int { return v.Len() }

func (d *MapDescriptor) Insert(v, key, value reflect.Value) {
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	v.SetMapIndex(key, value)
}

func (d *MapDescriptor) Iterate(v reflect.Value) Iterator { return newMapIterator(v) }
