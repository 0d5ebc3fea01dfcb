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
	"reflect"
	"unsafe"
)

// StringDescriptor is the CategoryString union arm: a get_view/set_from_view
// accessor pair. On the wire a string is a DynSeq of bytes.
type StringDescriptor struct {
	baseDescriptor
}

var stringGoType = reflect.TypeOf("")

func newStringDescriptor() *StringDescriptor {
	return &StringDescriptor{baseDescriptor: newBaseDescriptor(stringGoType, CategoryString)}
}

// GetView returns a read-only byte view of the string stored at ref.
func (d *StringDescriptor) GetView(ref TypedRef) []byte {
	s := *(*string)(unsafe.Pointer(&ref.bytes[0]))
	return unsafeStringBytes(s)
}

// SetFromView overwrites the string stored at ref with the bytes in view.
func (d *StringDescriptor) SetFromView(ref TypedRef, view []byte) {
	*(*string)(unsafe.Pointer(&ref.bytes[0])) = string(view)
}

func unsafeStringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
