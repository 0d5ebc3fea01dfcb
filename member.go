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

import "unsafe"

// Member describes one direct field of a record at a given version: (name,
// offset, member-descriptor). Offset is a true uintptr field offset supplied
// by the record's info function (typically unsafe.Offsetof) — Go permits exact
// pointer arithmetic within a single allocation via unsafe.Pointer/
// unsafe.Add, so a "canonical zero-address" model is realized literally
// rather than emulated with accessor closures.
//
// Predicate implements conditional members: when non-nil it is evaluated
// against the containing record's storage to decide whether the member
// participates in the presence bitmap at all. A nil Predicate means the
// member is unconditionally eligible (its bitmap bit still reflects
// default-skipping, just not conditional absence).
type Member struct {
	Name      string
	Offset    uintptr
	Desc      Descriptor
	Predicate func(recv unsafe.Pointer) bool
}

// Field builds a Member with no conditional predicate.
func Field(name string, offset uintptr, desc Descriptor) Member {
	return Member{Name: name, Offset: offset, Desc: desc}
}

// ConditionalField builds a Member present only when predicate holds.
func ConditionalField(name string, offset uintptr, desc Descriptor, predicate func(recv unsafe.Pointer) bool) Member {
	return Member{Name: name, Offset: offset, Desc: desc, Predicate: predicate}
}

// Present reports whether m participates given the record's base address.
func (m Member) Present(recv unsafe.Pointer) bool {
	if m.Predicate == nil {
		return true
	}
	return m.Predicate(recv)
}

// At returns a TypedRef into this member's storage, given the containing
// record's base address.
func (m Member) At(recv unsafe.Pointer) TypedRef {
	ptr := unsafe.Add(recv, m.Offset)
	return newTypedRefRaw(m.Desc, ptr)
}

// BaseClass describes a direct base: (base-descriptor, offset, derived-
// descriptor). Offset is the cumulative byte offset from the derived
// record's zero-address to the base's zero-address; the property that
// offsets compose by addition across a chain falls directly out of summing
// Offset along a BaseClass chain, which flatten.go does.
type BaseClass struct {
	Desc    *RecordDescriptor
	Offset  uintptr
	Derived *RecordDescriptor
}

// Base builds a BaseClass entry for use inside an info function. It leaves
// Derived nil; nothing in this package fills it in.
func Base(desc *RecordDescriptor, offset uintptr) BaseClass {
	return BaseClass{Desc: desc, Offset: offset}
}

// At returns the base's zero-address given the derived record's base address.
func (b BaseClass) At(recv unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(recv, b.Offset)
}
