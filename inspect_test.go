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
	"bytes"
	"reflect"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

type testWideScalars struct {
	U16  uint16
	U32  uint32
	Next int32
}

var testWideScalarsDesc *RecordDescriptor

func init() {
	u16Desc, _ := DescriptorOf(reflect.TypeOf(uint16(0)))
	u32Desc, _ := DescriptorOf(reflect.TypeOf(uint32(0)))
	i32Desc, _ := DescriptorOf(reflect.TypeOf(int32(0)))

	testWideScalarsDesc = RegisterRecord[testWideScalars]("metabin_test.WideScalars", 0, func(int8) VersionInfo {
		return VersionInfo{
			Members: []Member{
				Field("u16", unsafe.Offsetof(testWideScalars{}.U16), u16Desc),
				Field("u32", unsafe.Offsetof(testWideScalars{}.U32), u32Desc),
				Field("next", unsafe.Offsetof(testWideScalars{}.Next), i32Desc),
			},
		}
	})
}

// TestInspectWideScalarKinds exercises a record whose fields would be
// misread by a scalar dump that defaults every non-special-cased kind to a
// signed varint: u16=60000 is a raw 2-byte field that a varint read would
// misparse, and u32=4000000000 (an unsigned varint field) would print wrong
// under zigzag decoding. Getting these kinds wrong also desyncs the byte
// position of "next", so its correct value is the real regression check.
func TestInspectWideScalarKinds(t *testing.T) {
	c := NewCodec()
	v := &testWideScalars{U16: 60000, U32: 4000000000, Next: -7}

	var wire bytes.Buffer
	require.NoError(t, c.WriteBinary(&wire, v))

	var out strings.Builder
	require.NoError(t, c.Inspect(&out, bytes.NewReader(wire.Bytes()), testWideScalarsDesc))

	dump := out.String()
	require.Contains(t, dump, "u16")
	require.Contains(t, dump, "60000")
	require.Contains(t, dump, "u32")
	require.Contains(t, dump, "4000000000")
	require.Contains(t, dump, "next")
	require.Contains(t, dump, "-7")
}
