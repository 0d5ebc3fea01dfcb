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
	"io"
	"reflect"
	"strings"
)

// Inspect reads a stream written for root and prints the reconstructed
// ClassHeaderList, presence bitmap, and flattened field values to w. Headers
// and bitmap are read with the same helpers decodeRecord uses (readHeaders,
// readBitmap); scalars, strings and nested records are rendered directly,
// and every other field is decoded through decodeValue into a throwaway
// value of its type. Conditional-member predicates are not evaluated. This
// is the backing implementation for cmd/metabindump, a debugging aid and
// not part of the wire-format contract itself.
func (c *Codec) Inspect(w io.Writer, r io.Reader, root *RecordDescriptor) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return c.inspectRecord(w, WrapByteBuffer(data), root)
}

// inspectRecord is Inspect's buffer-level implementation, reused directly
// (no io.Reader re-wrapping) when a nested record field recurses.
func (c *Codec) inspectRecord(w io.Writer, buf *ByteBuffer, root *RecordDescriptor) error {
	headers, err := readHeaders(buf, root)
	if err != nil {
		return fmt.Errorf("metabin: reading class headers: %w", err)
	}
	fmt.Fprintf(w, "class headers (%d):\n", len(headers))
	for _, h := range headers {
		name := "?"
		if rd, err := LookupByHash(h.NameHash); err == nil {
			name = rd.Name
		}
		fmt.Fprintf(w, "  %-24s hash=%#010x version=%d\n", name, h.NameHash, h.Version)
	}

	members := root.AllMembers(headers)
	width := bitmapByteWidth(len(members))
	bitmap, err := readBitmap(buf, width)
	if err != nil {
		return fmt.Errorf("metabin: reading presence bitmap: %w", err)
	}
	fmt.Fprintf(w, "presence bitmap: %s (%d-byte, %d fields)\n", formatBitmap(bitmap, len(members)), width, len(members))

	for i, m := range members {
		present := bitmap&(1<<uint(i)) != 0
		if !present {
			fmt.Fprintf(w, "  [ ] %-24s <default>\n", m.Name)
			continue
		}
		fmt.Fprintf(w, "  [x] %-24s ", m.Name)
		value, err := c.inspectValue(buf, m.Desc)
		if err != nil {
			return fmt.Errorf("metabin: field %q: %w", m.Name, err)
		}
		fmt.Fprintln(w, value)
	}
	return nil
}

// inspectValue decodes one value per its descriptor's category and renders
// it as a short, human-readable string, recursing for nested records.
func (c *Codec) inspectValue(buf *ByteBuffer, desc Descriptor) (string, error) {
	switch desc.Category() {
	case CategoryRecord:
		rd := desc.(*RecordDescriptor)
		var sb strings.Builder
		if err := c.inspectRecord(&sb, buf, rd); err != nil {
			return "", err
		}
		return "{\n" + indent(sb.String()) + "  }", nil
	default:
		return c.inspectScalarish(buf, desc)
	}
}

func (c *Codec) inspectScalarish(buf *ByteBuffer, desc Descriptor) (string, error) {
	switch desc.Category() {
	case CategoryScalar:
		sd := desc.(*ScalarDescriptor)
		switch sd.Kind {
		case ScalarBool:
			v, err := buf.ReadBool()
			return fmt.Sprintf("%v", v), err
		case ScalarF32:
			v, err := c.readFloat32(buf)
			return fmt.Sprintf("%v", v), err
		case ScalarF64:
			v, err := buf.ReadFloat64()
			return fmt.Sprintf("%v", v), err
		case ScalarU64:
			v, err := buf.ReadVarUint64()
			return fmt.Sprintf("%d", v), err
		case ScalarI64:
			v, err := buf.ReadVarInt64()
			return fmt.Sprintf("%d", v), err
		case ScalarChar, ScalarI8:
			v, err := buf.ReadInt8()
			return fmt.Sprintf("%d", v), err
		case ScalarU8:
			v, err := buf.ReadByte_()
			return fmt.Sprintf("%d", v), err
		case ScalarI16:
			v, err := buf.ReadInt16()
			return fmt.Sprintf("%d", v), err
		case ScalarU16:
			v, err := buf.ReadUint16()
			return fmt.Sprintf("%d", v), err
		case ScalarI32:
			v, err := buf.ReadVarInt32()
			return fmt.Sprintf("%d", v), err
		case ScalarU32:
			v, err := buf.ReadVarUint32()
			return fmt.Sprintf("%d", v), err
		default:
			return "", fmt.Errorf("metabin: unhandled scalar kind %v", sd.Kind)
		}
	case CategoryString:
		n, err := buf.ReadVarUint32()
		if err != nil {
			return "", err
		}
		data, err := buf.ReadBinary(int(n))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%q", string(data)), nil
	default:
		// Containers, enums, pointers and type-erased values go through the
		// real decoder into a throwaway value, so their bytes are consumed.
		v := reflect.New(desc.NativeType()).Elem()
		ref, err := NewTypedRef(v)
		if err != nil {
			return "", err
		}
		if err := c.decodeValue(buf, ref); err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", v.Interface()), nil
	}
}

func formatBitmap(bitmap uint64, n int) string {
	var sb strings.Builder
	for i := n - 1; i >= 0; i-- {
		if bitmap&(1<<uint(i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
