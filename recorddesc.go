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
	"sync"
)

// VersionInfo is what an InfoFunc returns for one version: the record's
// direct members and direct bases declared at that version.
type VersionInfo struct {
	Members []Member
	Bases   []BaseClass
}

// InfoFunc is a pure, per-version "info(v)" function: callable for every
// version in 0..=current_version.
type InfoFunc func(version int8) VersionInfo

// RecordDescriptor is the CategoryRecord union arm: a composite type with a
// stable, domain-hashed name, a current version, and lazy member/base
// enumeration keyed on version.
type RecordDescriptor struct {
	baseDescriptor
	Name           string
	NameHash       uint32
	CurrentVersion int8

	infoFn    InfoFunc
	infoCache sync.Map // int8 -> VersionInfo

	allMembersCache sync.Map // string (ClassHeaderList.cacheKey) -> []FlattenedMember
	allBasesCache   sync.Map // string -> []FlattenedBase
}

// newRecordDescriptor constructs (but does not register) a RecordDescriptor.
func newRecordDescriptor(t reflect.Type, name string, version int8, infoFn InfoFunc) *RecordDescriptor {
	return &RecordDescriptor{
		baseDescriptor: newBaseDescriptor(t, CategoryRecord),
		Name:           name,
		NameHash:       nameHash(name),
		CurrentVersion: version,
		infoFn:         infoFn,
	}
}

// infoForVersion memoizes infoFn(v). InfoFunc must be pure, so a benign
// double-compute under concurrent first access is acceptable — the cache
// converges to the same value either way, and Go's sync.Map already gives
// lock-free reads once populated.
func (d *RecordDescriptor) infoForVersion(v int8) VersionInfo {
	if cached, ok := d.infoCache.Load(v); ok {
		return cached.(VersionInfo)
	}
	info := d.infoFn(v)
	actual, _ := d.infoCache.LoadOrStore(v, info)
	return actual.(VersionInfo)
}

// validateOffsets panics if a version's direct members don't have
// monotonically non-decreasing offsets by declaration order — a cheap
// sanity check against mis-declared info functions, mirroring the
// registration-time offset check C++ reflection layers like this one
// typically run.
func (d *RecordDescriptor) validateOffsets(v int8, info VersionInfo) {
	var last uintptr
	for i, m := range info.Members {
		if i > 0 && m.Offset < last {
			panic(&RegistryCollisionError{
				Name:   d.Name,
				Reason: fmt.Sprintf("version %d member %q has a lower offset than its predecessor", v, m.Name),
			})
		}
		last = m.Offset
	}
}
