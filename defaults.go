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

import "reflect"

// isDefaultValue reports whether v equals the canonical default-constructed
// value of its type, used by the presence-bitmap default-skipping rule. A Go
// zero value is exactly the canonical default for every type this engine can
// describe (scalars, strings, slices, maps, arrays, records), so
// reflect.Value.IsZero already implements the comparison without a bespoke
// walk.
func isDefaultValue(v reflect.Value) bool { return v.IsZero() }
