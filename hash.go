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

import "github.com/spaolacci/murmur3"

// nameHash computes the 32-bit non-zero hash of a record name used as its
// wire-level stable identifier. murmur3 is used here rather than a
// hand-rolled FNV implementation, matching the well-tested hashing library
// already available for this purpose.
func nameHash(name string) uint32 {
	h := murmur3.Sum32([]byte(name))
	if h == 0 {
		// Collision with the reserved "no value"/null-pointer sentinel
		// (hash 0 means a null OwningPtrRecord). Perturb deterministically
		// so every real name still hashes non-zero.
		h = murmur3.Sum32([]byte(name + "\x00metabin"))
		if h == 0 {
			h = 1
		}
	}
	return h
}
