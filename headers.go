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

import "strconv"

// HeaderEntry is one (record-name, version) pair, keyed on the wire by the
// record's 32-bit name hash rather than the name string itself.
type HeaderEntry struct {
	NameHash uint32
	Version  int8
}

// ClassHeaderList is the ordered sequence of HeaderEntry used to encode
// "what schema this object was written under". The traversal order is
// depth-first over declared bases, with each record name appearing at most
// once across the transitive closure.
type ClassHeaderList []HeaderEntry

// VersionFor returns the version this header list records for nameHash, and
// whether nameHash appears in the list at all.
func (h ClassHeaderList) VersionFor(nameHash uint32) (int8, bool) {
	for _, e := range h {
		if e.NameHash == nameHash {
			return e.Version, true
		}
	}
	return 0, false
}

// cacheKey builds a stable string key for memoizing flatten results by
// (record, header-list) identity.
func (h ClassHeaderList) cacheKey() string {
	// Bounded by the 64-field cap on flattenable records, so this is a
	// handful of entries at most; a string concatenation is cheap enough
	// and far simpler than a manual hash that must also avoid collisions.
	buf := make([]byte, 0, len(h)*12)
	for _, e := range h {
		buf = strconv.AppendUint(buf, uint64(e.NameHash), 16)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.Version), 10)
		buf = append(buf, ',')
	}
	return string(buf)
}

// CurrentHeaders assembles the ClassHeaderList for d as it would be written
// right now: d's own (name, current-version), followed depth-first by the
// headers of its declared bases, never repeating a record across the
// transitive closure (invariant §3.6).
func (d *RecordDescriptor) CurrentHeaders() ClassHeaderList {
	visited := map[uint32]bool{}
	var walk func(rd *RecordDescriptor) ClassHeaderList
	walk = func(rd *RecordDescriptor) ClassHeaderList {
		if visited[rd.NameHash] {
			return nil
		}
		visited[rd.NameHash] = true
		list := ClassHeaderList{{NameHash: rd.NameHash, Version: rd.CurrentVersion}}
		info := rd.infoForVersion(rd.CurrentVersion)
		for _, b := range info.Bases {
			list = append(list, walk(b.Desc)...)
		}
		return list
	}
	return walk(d)
}
