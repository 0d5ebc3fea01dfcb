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
	"fmt"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestLookupByNameAndHash(t *testing.T) {
	byName, err := LookupByName(testShapeDesc.Name)
	require.NoError(t, err)
	require.Same(t, testShapeDesc, byName)

	byHash, err := LookupByHash(testShapeDesc.NameHash)
	require.NoError(t, err)
	require.Same(t, testShapeDesc, byHash)
}

func TestLookupUnknownNameAndHash(t *testing.T) {
	_, err := LookupByName("metabin_test.DoesNotExist")
	require.Error(t, err)
	var unknown *UnknownRecordError
	require.ErrorAs(t, err, &unknown)

	_, err = LookupByHash(0xdeadbeef)
	require.Error(t, err)
	require.ErrorAs(t, err, &unknown)
}

type registryTestDupA struct{ X int32 }
type registryTestDupB struct{ Y int32 }

func TestRegisterRecordPanicsOnNameCollision(t *testing.T) {
	i32Desc, _ := DescriptorOf(reflect.TypeOf(int32(0)))
	RegisterRecord[registryTestDupA]("metabin_test.Dup", 0, func(int8) VersionInfo {
		return VersionInfo{Members: []Member{Field("x", unsafe.Offsetof(registryTestDupA{}.X), i32Desc)}}
	})

	require.Panics(t, func() {
		RegisterRecord[registryTestDupB]("metabin_test.Dup", 0, func(int8) VersionInfo {
			return VersionInfo{Members: []Member{Field("y", unsafe.Offsetof(registryTestDupB{}.Y), i32Desc)}}
		})
	})
}

type registryTestTooMany struct{}

func TestRegisterRecordPanicsOnTooManyFields(t *testing.T) {
	i32Desc, _ := DescriptorOf(reflect.TypeOf(int32(0)))
	members := make([]Member, 65)
	for i := range members {
		members[i] = Field(fmt.Sprintf("f%d", i), 0, i32Desc)
	}

	require.Panics(t, func() {
		RegisterRecord[registryTestTooMany]("metabin_test.TooMany", 0, func(int8) VersionInfo {
			return VersionInfo{Members: members}
		})
	})
}

func TestDescriptorOfMemoizesBuiltins(t *testing.T) {
	d1, err := DescriptorOf(reflect.TypeOf([]int32(nil)))
	require.NoError(t, err)
	d2, err := DescriptorOf(reflect.TypeOf([]int32(nil)))
	require.NoError(t, err)
	require.Same(t, d1, d2)
}
