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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedRefOfAndGet(t *testing.T) {
	v := int32(123)
	ref, err := TypedRefOf(&v)
	require.NoError(t, err)
	require.Equal(t, CategoryScalar, ref.Category())

	got := Get[int32](ref)
	require.Equal(t, int32(123), *got)

	*got = 456
	require.Equal(t, int32(456), v, "Get must alias the original storage, not a copy")
}

func TestGetPanicsOnTypeMismatch(t *testing.T) {
	v := int32(1)
	ref, err := TypedRefOf(&v)
	require.NoError(t, err)

	require.Panics(t, func() {
		Get[string](ref)
	})
}

func TestNewTypedRefNonAddressableFallback(t *testing.T) {
	// A non-addressable reflect.Value (e.g. from a map iteration value) still
	// produces a usable read-only TypedRef, per NewTypedRef's documented
	// fallback to a throwaway addressable copy.
	m := map[string]int32{"x": 7}
	ref, err := NewTypedRef(reflect.ValueOf(m["x"]))
	require.NoError(t, err)
	require.Equal(t, int32(7), *Get[int32](ref))
}
