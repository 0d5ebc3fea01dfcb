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

// SetDescriptor is the CategorySet union arm. Go has no built-in set type,
// so a registered set is backed by a map[Elem]struct{} (unique) or
// map[Elem]int (Multi: element -> multiplicity), representing a set over a
// native Go map internally.
type SetDescriptor struct {
	baseDescriptor
	Elem  Descriptor
	Multi bool
}

func newSetDescriptor(t reflect.Type, elem Descriptor, multi bool) *SetDescriptor {
	return &SetDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategorySet),
		Elem:           elem,
		Multi:          multi,
	}
}

func (d *SetDescriptor) Len(v reflect.Value) int { return v.Len() }

// Insert adds elem to the set backing map v, bumping its multiplicity if
// Multi is set and the element is already present.
func (d *SetDescriptor) Insert(v reflect.Value, elem reflect.Value) {
	if d.Multi {
		existing := v.MapIndex(elem)
		count := int64(1)
		if existing.IsValid() {
			count = existing.Int() + 1
		}
		v.SetMapIndex(elem, reflect.ValueOf(int(count)).Convert(v.Type().Elem()))
		return
	}
	v.SetMapIndex(elem, reflect.ValueOf(struct{}{}))
}

func (d *SetDescriptor) Iterate(v reflect.Value) Iterator { return newSetIterator(v) }

// multiplicityOf returns how many times elem occurs, for Multi sets, or 1/0
// for unique sets.
func (d *SetDescriptor) multiplicityOf(v, elem reflect.Value) int {
	existing := v.MapIndex(elem)
	if !existing.IsValid() {
		return 0
	}
	if d.Multi {
		return int(existing.Int())
	}
	return 1
}
