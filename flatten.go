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

// FlattenedMember is one entry of a record's "all-members" list: a direct
// or base-contributed member, together with the cumulative byte offset from
// the record's own zero-address.
type FlattenedMember struct {
	Name   string
	Offset uintptr
	Desc   Descriptor
	Member Member // original member, for Predicate access
}

// FlattenedBase is one entry of a record's "all-bases" list: a direct or
// transitive base, with the cumulative offset from the record's own
// zero-address (offsets compose by addition along a chain).
type FlattenedBase struct {
	Desc   *RecordDescriptor
	Offset uintptr
}

// AllMembers returns d's fully flattened member list for the schema encoded
// by headers, memoized by (d, headers) identity and never invalidated.
func (d *RecordDescriptor) AllMembers(headers ClassHeaderList) []FlattenedMember {
	key := headers.cacheKey()
	if cached, ok := d.allMembersCache.Load(key); ok {
		return cached.([]FlattenedMember)
	}
	result := flattenMembers(d, headers, 0)
	actual, _ := d.allMembersCache.LoadOrStore(key, result)
	return actual.([]FlattenedMember)
}

// AllBases returns d's fully flattened base list (direct + transitive) for
// the schema encoded by headers, memoized the same way as AllMembers.
func (d *RecordDescriptor) AllBases(headers ClassHeaderList) []FlattenedBase {
	key := headers.cacheKey()
	if cached, ok := d.allBasesCache.Load(key); ok {
		return cached.([]FlattenedBase)
	}
	result := flattenBases(d, headers, 0)
	actual, _ := d.allBasesCache.LoadOrStore(key, result)
	return actual.([]FlattenedBase)
}

// flattenMembers computes the all-members list:
//  1. direct members of d at the version headers names for d
//  2. recursively, for each direct base B, B's flattened members (computed
//     against the sub-list of headers relevant to B's own transitive
//     closure), offset by the cumulative offset from d to B.
func flattenMembers(d *RecordDescriptor, headers ClassHeaderList, baseOffset uintptr) []FlattenedMember {
	version, ok := headers.VersionFor(d.NameHash)
	if !ok {
		// UnknownRecord-class condition: the header list names a record we
		// have no version entry for. The caller (codec reader) is expected
		// to have already validated this; defensively fall back to current.
		version = d.CurrentVersion
	}
	info := d.infoForVersion(version)

	var out []FlattenedMember
	for _, m := range info.Members {
		out = append(out, FlattenedMember{
			Name:   m.Name,
			Offset: baseOffset + m.Offset,
			Desc:   m.Desc,
			Member: m,
		})
	}
	for _, b := range info.Bases {
		subHeaders := filterHeadersForClosure(headers, b.Desc)
		out = append(out, flattenMembers(b.Desc, subHeaders, baseOffset+b.Offset)...)
	}
	return out
}

func flattenBases(d *RecordDescriptor, headers ClassHeaderList, baseOffset uintptr) []FlattenedBase {
	version, ok := headers.VersionFor(d.NameHash)
	if !ok {
		version = d.CurrentVersion
	}
	info := d.infoForVersion(version)

	var out []FlattenedBase
	for _, b := range info.Bases {
		cum := baseOffset + b.Offset
		out = append(out, FlattenedBase{Desc: b.Desc, Offset: cum})
		subHeaders := filterHeadersForClosure(headers, b.Desc)
		out = append(out, flattenBases(b.Desc, subHeaders, cum)...)
	}
	return out
}

// filterHeadersForClosure restricts headers down to the entries that belong
// to base's own transitive closure (base itself plus its recursively
// declared bases, read at base's current version — declared-base shape is
// assumed stable across versions). This is the filtered sub-list each direct
// base recurses into.
func filterHeadersForClosure(headers ClassHeaderList, base *RecordDescriptor) ClassHeaderList {
	closure := transitiveClosureNames(base)
	var out ClassHeaderList
	for _, h := range headers {
		if closure[h.NameHash] {
			out = append(out, h)
		}
	}
	return out
}

func transitiveClosureNames(d *RecordDescriptor) map[uint32]bool {
	set := map[uint32]bool{d.NameHash: true}
	info := d.infoForVersion(d.CurrentVersion)
	for _, b := range info.Bases {
		for h := range transitiveClosureNames(b.Desc) {
			set[h] = true
		}
	}
	return set
}
