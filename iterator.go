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

// Iterator is the uniform erasure the codec walks over sequence, set, and
// map descriptors. Each container category has its own concrete iterator
// type below (an enum-of-structs rather than a hand-rolled virtual table,
// per the design notes' guidance for sum-typed languages); all three satisfy
// this one interface so the codec never needs a type switch to walk them.
//
// For DynSeq/FixSeq/Set, Key() returns the zero reflect.Value (no key);
// Value() returns the element. For Map, Key() returns the entry's key.
type Iterator interface {
	Next() bool
	Key() reflect.Value
	Value() reflect.Value
}

// seqIterator walks a reflect.Slice or reflect.Array value by index.
type seqIterator struct {
	v   reflect.Value
	idx int
}

func newSeqIterator(v reflect.Value) *seqIterator {
	return &seqIterator{v: v, idx: -1}
}

func (it *seqIterator) Next() bool {
	it.idx++
	return it.idx < it.v.Len()
}

func (it *seqIterator) Key() reflect.Value   { return reflect.Value{} }
func (it *seqIterator) Value() reflect.Value { return it.v.Index(it.idx) }

// mapIterator walks a reflect.Map value, yielding (key, value) pairs. Both
// are copies of the map's contents: writes through them do not reach the
// map.
type mapIterator struct {
	iter *reflect.MapIter
}

func newMapIterator(v reflect.Value) *mapIterator {
	return &mapIterator{iter: v.MapRange()}
}

func (it *mapIterator) Next() bool          { return it.iter.Next() }
func (it *mapIterator) Key() reflect.Value  { return it.iter.Key() }
func (it *mapIterator) Value() reflect.Value { return it.iter.Value() }

// setIterator walks the backing reflect.Map of a Set/MultiSet descriptor,
// yielding only elements (the map's value side carries presence/count, not
// a logical value, so it is never exposed through Value()/Key() here).
type setIterator struct {
	iter *reflect.MapIter
}

func newSetIterator(v reflect.Value) *setIterator {
	return &setIterator{iter: v.MapRange()}
}

func (it *setIterator) Next() bool          { return it.iter.Next() }
func (it *setIterator) Key() reflect.Value  { return reflect.Value{} }
func (it *setIterator) Value() reflect.Value { return it.iter.Key() }
