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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// Test fixtures follow a handful of representative schemas registered once
// and exercised by many table-driven tests, rather than one throwaway type
// per test.

type testShape struct {
	ID   int32
	Name string
}

type testCircle struct {
	testShape
	Radius float32
}

type testContainer struct {
	Items []int32
	Tags  map[string]struct{}
	Thing interface{}
}

type testOwner struct {
	Shape *testShape
}

var (
	testShapeDesc     *RecordDescriptor
	testCircleDesc    *RecordDescriptor
	testContainerDesc *RecordDescriptor
	testOwnerDesc     *RecordDescriptor
)

func init() {
	i32Desc, _ := DescriptorOf(reflect.TypeOf(int32(0)))
	f32Desc, _ := DescriptorOf(reflect.TypeOf(float32(0)))
	strDesc, _ := DescriptorOf(reflect.TypeOf(""))

	testShapeDesc = RegisterRecord[testShape]("metabin_test.Shape", 0, func(int8) VersionInfo {
		return VersionInfo{
			Members: []Member{
				Field("id", unsafe.Offsetof(testShape{}.ID), i32Desc),
				Field("name", unsafe.Offsetof(testShape{}.Name), strDesc),
			},
		}
	})

	testCircleDesc = RegisterRecord[testCircle]("metabin_test.Circle", 0, func(int8) VersionInfo {
		return VersionInfo{
			Members: []Member{
				Field("radius", unsafe.Offsetof(testCircle{}.Radius), f32Desc),
			},
			Bases: []BaseClass{
				Base(testShapeDesc, unsafe.Offsetof(testCircle{}.testShape)),
			},
		}
	})

	sliceDesc, _ := DescriptorOf(reflect.TypeOf([]int32(nil)))
	setDesc, _ := DescriptorOf(reflect.TypeOf(map[string]struct{}(nil)))
	thingDesc, _ := DescriptorOf(reflect.TypeOf((*interface{})(nil)).Elem())

	testContainerDesc = RegisterRecord[testContainer]("metabin_test.Container", 0, func(int8) VersionInfo {
		return VersionInfo{
			Members: []Member{
				Field("items", unsafe.Offsetof(testContainer{}.Items), sliceDesc),
				Field("tags", unsafe.Offsetof(testContainer{}.Tags), setDesc),
				Field("thing", unsafe.Offsetof(testContainer{}.Thing), thingDesc),
			},
		}
	})

	ownerPtrDesc, _ := DescriptorOf(reflect.TypeOf((*testShape)(nil)))
	testOwnerDesc = RegisterRecord[testOwner]("metabin_test.Owner", 0, func(int8) VersionInfo {
		return VersionInfo{
			Members: []Member{
				Field("shape", unsafe.Offsetof(testOwner{}.Shape), ownerPtrDesc),
			},
		}
	})
}

// serde writes value with c and reads it back into a fresh instance of the
// same type.
func serde[T any](t *testing.T, c *Codec, value *T) *T {
	t.Helper()
	buf := NewByteBuffer()
	ref, err := NewTypedRef(reflect.ValueOf(value).Elem())
	require.NoError(t, err)
	require.NoError(t, c.encodeValue(buf, ref))

	var out T
	outRef, err := NewTypedRef(reflect.ValueOf(&out).Elem())
	require.NoError(t, err)
	require.NoError(t, c.decodeValue(WrapByteBuffer(buf.Bytes()), outRef))
	return &out
}

func TestCodecScalarAndStringRoundTrip(t *testing.T) {
	c := NewCodec()
	in := &testShape{ID: 42, Name: "widget"}
	out := serde(t, c, in)
	require.Equal(t, in, out)
}

func TestCodecInheritanceFlattening(t *testing.T) {
	c := NewCodec()
	in := &testCircle{testShape: testShape{ID: 7, Name: "ring"}, Radius: 2.5}
	out := serde(t, c, in)
	require.Equal(t, in, out)
}

func TestCodecContainerRoundTrip(t *testing.T) {
	c := NewCodec()
	in := &testContainer{
		Items: []int32{1, 2, 3},
		Tags:  map[string]struct{}{"a": {}, "b": {}},
		Thing: &testShape{ID: 9, Name: "boxed"},
	}
	out := serde(t, c, in)
	require.Equal(t, in.Items, out.Items)
	require.Equal(t, in.Tags, out.Tags)
	require.Equal(t, in.Thing, out.Thing)
}

func TestCodecTypeErasedHoldsDifferentDynamicTypes(t *testing.T) {
	c := NewCodec()

	asShape := &testContainer{Thing: &testShape{ID: 1, Name: "s"}}
	gotShape := serde(t, c, asShape)
	require.IsType(t, &testShape{}, gotShape.Thing)
	require.Equal(t, asShape.Thing, gotShape.Thing)

	asCircle := &testContainer{Thing: &testCircle{testShape: testShape{ID: 2, Name: "c"}, Radius: 1.5}}
	gotCircle := serde(t, c, asCircle)
	require.IsType(t, &testCircle{}, gotCircle.Thing)
	require.Equal(t, asCircle.Thing, gotCircle.Thing)
}

func TestCodecOwningPtrRoundTrip(t *testing.T) {
	c := NewCodec()
	in := &testOwner{Shape: &testShape{ID: 3, Name: "owned"}}
	out := serde(t, c, in)
	require.Equal(t, in, out)
}

func TestCodecOwningPtrNull(t *testing.T) {
	c := NewCodec()
	in := &testOwner{Shape: nil}
	out := serde(t, c, in)
	require.Nil(t, out.Shape)
}

// TestCodecOwningPtrRejectsMismatchedDynamicType covers the monomorphic
// adaptation documented on OwningPtrRecordDescriptor: a wire hash naming a
// different record than the pointer's static Target is rejected rather than
// silently misinterpreted.
func TestCodecOwningPtrRejectsMismatchedDynamicType(t *testing.T) {
	c := NewCodec()
	buf := NewByteBuffer()
	buf.WriteUint32Raw(testCircleDesc.NameHash)

	var out testOwner
	ref, err := NewTypedRef(reflect.ValueOf(&out.Shape).Elem())
	require.NoError(t, err)
	err = c.decodeValue(WrapByteBuffer(buf.Bytes()), ref)
	require.Error(t, err)
}

func TestCodecSkipDefaultMembers(t *testing.T) {
	zero := &testShape{}

	skipping := NewCodec(SkipDefaultMembers(true))
	buf := NewByteBuffer()
	ref, err := NewTypedRef(reflect.ValueOf(zero).Elem())
	require.NoError(t, err)
	require.NoError(t, skipping.encodeValue(buf, ref))
	// header (4+1 bytes) + 1-byte bitmap, no field bodies.
	require.Equal(t, 6, buf.Len())

	notSkipping := NewCodec(SkipDefaultMembers(false))
	buf2 := NewByteBuffer()
	require.NoError(t, notSkipping.encodeValue(buf2, ref))
	require.Greater(t, buf2.Len(), buf.Len())

	out := serde(t, skipping, zero)
	require.Equal(t, zero, out)
}

func TestCodecWriteBinaryReadBinary(t *testing.T) {
	in := &testShape{ID: 99, Name: "top-level"}
	var wire bytes.Buffer
	require.NoError(t, NewCodec().WriteBinary(&wire, in))

	var out testShape
	require.NoError(t, NewCodec().ReadBinary(&wire, &out))
	require.Equal(t, *in, out)
}
