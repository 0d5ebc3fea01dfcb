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

import "fmt"

// RegistryCollisionError is raised when a record's name, hash, or native
// type identity collides with a previously registered record. Registration
// callers should let this propagate as a process-startup panic.
type RegistryCollisionError struct {
	Name   string
	Reason string
}

func (e *RegistryCollisionError) Error() string {
	return fmt.Sprintf("metabin: registry collision for %q: %s", e.Name, e.Reason)
}

// TypeMismatchError is raised by Get[T] when the descriptor stored
// in the ref does not describe T. Callers treat this as a programmer bug.
type TypeMismatchError struct {
	Want, Got string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("metabin: typed ref holds %s, not %s", e.Got, e.Want)
}

// UnknownRecordError is raised when a wire-level name hash does not resolve
// to any registered record.
type UnknownRecordError struct {
	Hash uint32
}

func (e *UnknownRecordError) Error() string {
	return fmt.Sprintf("metabin: unknown record hash %#x", e.Hash)
}

// TooManyFieldsError is raised at registration when a record's flattened
// member+base count exceeds the 64-bit presence bitmap's capacity.
type TooManyFieldsError struct {
	Name  string
	Count int
}

func (e *TooManyFieldsError) Error() string {
	return fmt.Sprintf("metabin: record %q has %d flattenable fields, max is 64", e.Name, e.Count)
}

// TruncatedInputError is raised when the reader runs out of bytes mid-value.
type TruncatedInputError struct {
	Needed, Have int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("metabin: truncated input: need %d bytes, have %d", e.Needed, e.Have)
}

// PredicateDisagreementError is raised when a conditional member's bitmap
// bit disagrees with what the predicate evaluates to on partially-read state.
type PredicateDisagreementError struct {
	Member string
}

func (e *PredicateDisagreementError) Error() string {
	return fmt.Sprintf("metabin: conditional member %q's presence bit disagrees with its predicate on read", e.Member)
}
