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

package main

import (
	"reflect"
	"unsafe"

	"github.com/metabin/metabin"
)

// Point and Named are small demo schemas so metabindump is runnable without
// an embedding project's own registrations. Real users register their own
// types and dump against those instead.

type Point struct {
	X, Y int32
}

type Named struct {
	Name string
	Pos  Point
}

var pointDesc *metabin.RecordDescriptor
var namedDesc *metabin.RecordDescriptor

func init() {
	i32 := reflect.TypeOf(int32(0))
	strType := reflect.TypeOf("")

	i32Desc, _ := metabin.DescriptorOf(i32)
	strDesc, _ := metabin.DescriptorOf(strType)

	pointDesc = metabin.RegisterRecord[Point]("demo.Point", 0, func(int8) metabin.VersionInfo {
		return metabin.VersionInfo{
			Members: []metabin.Member{
				metabin.Field("x", unsafe.Offsetof(Point{}.X), i32Desc),
				metabin.Field("y", unsafe.Offsetof(Point{}.Y), i32Desc),
			},
		}
	})

	pointRecordDesc, _ := metabin.DescriptorOf(reflect.TypeOf(Point{}))
	namedDesc = metabin.RegisterRecord[Named]("demo.Named", 0, func(int8) metabin.VersionInfo {
		return metabin.VersionInfo{
			Members: []metabin.Member{
				metabin.Field("name", unsafe.Offsetof(Named{}.Name), strDesc),
				metabin.Field("pos", unsafe.Offsetof(Named{}.Pos), pointRecordDesc),
			},
		}
	})
}

func demoRecordNames() []string {
	return []string{pointDesc.Name, namedDesc.Name}
}
