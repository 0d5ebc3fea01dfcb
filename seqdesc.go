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

// DynSeqDescriptor is the CategoryDynSeq union arm: a growable list backed
// by a Go slice, exposing structural ops (Len/PushBack/Iterate) rather than
// direct (de)serialize methods.
type DynSeqDescriptor struct {
	baseDescriptor
	Elem Descriptor
}

func newDynSeqDescriptor(t reflect.Type, elem Descriptor) *DynSeqDescriptor {
	return &DynSeqDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryDynSeq),
		Elem:           elem,
	}
}

func (d *DynSeqDescriptor) Len(v reflect.Value) int { return v.Len() }

// PushBack appends elem (a reflect.Value of the element type) to the slice
// addressed by v, which must be addressable/settable.
func (d *DynSeqDescriptor) PushBack(v reflect.Value, elem reflect.Value) {
	v.Set(reflect.Append(v, elem))
}

func (d *DynSeqDescriptor) Iterate(v reflect.Value) Iterator { return newSeqIterator(v) }

// FixSeqDescriptor is the CategoryFixSeq union arm: a Go array of fixed
// length >= 1, iterated but never grown.
type FixSeqDescriptor struct {
	baseDescriptor
	Elem Descriptor
	Len  int
}

func newFixSeqDescriptor(t reflect.Type, elem Descriptor) *FixSeqDescriptor {
	return &FixSeqDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryFixSeq),
		Elem:           elem,
		Len:            t.Len(),
	}
}

func (d *FixSeqDescriptor) Iterate(v reflect.Value) Iterator { return newSeqIterator(v) }
