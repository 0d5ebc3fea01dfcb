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

// Command metabingen generates metabin.RegisterRecord calls for struct types
// annotated with a //metabin:record directive, the same way a //go:generate
// invocation of stencil or stringer would. It looks for comments of the form
//
//	//metabin:record name="pkg.Type" version=N
//
// immediately above a struct declaration, and emits one RegisterRecord call
// per annotated struct into a generated file, with one Field entry per
// exported field (scalar, string, or another //metabin:record-annotated type
// in the same package). Base classes are not emitted.
package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

var directiveRe = regexp.MustCompile(`^//metabin:record\s+name="([^"]+)"\s+version=(\d+)\s*$`)

var outFile string

var rootCmd = &cobra.Command{
	Use:   "metabingen <package-dir>",
	Short: "Generate metabin.RegisterRecord calls from //metabin:record directives",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

func init() {
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "metabin_register.go", "generated file name, relative to the package directory")
}

type recordSpec struct {
	goName  string
	name    string
	version string
	fields  []fieldSpec
}

type fieldSpec struct {
	goName string
	goType string
}

func runGen(cmd *cobra.Command, args []string) error {
	dir := args[0]

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
	}, ".")
	if err != nil {
		return fmt.Errorf("metabingen: loading package: %w", err)
	}
	if len(pkgs) == 0 || len(pkgs[0].Syntax) == 0 {
		return fmt.Errorf("metabingen: no Go files found in %s", dir)
	}
	pkg := pkgs[0]

	var specs []recordSpec
	for _, file := range pkg.Syntax {
		specs = append(specs, collectRecordSpecs(file)...)
	}
	if len(specs) == 0 {
		return fmt.Errorf("metabingen: no //metabin:record directives found in %s", dir)
	}

	src := render(pkg.Name, specs)
	formatted, err := format.Source([]byte(src))
	if err != nil {
		// Emit the unformatted source anyway so the caller can see what went
		// wrong, rather than losing the generated content entirely.
		formatted = []byte(src)
	}

	outPath := filepath.Join(dir, outFile)
	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		return fmt.Errorf("metabingen: writing %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d record(s))\n", outPath, len(specs))
	return nil
}

// collectRecordSpecs walks file's declarations, matching a //metabin:record
// directive comment to the struct type declared immediately below it.
func collectRecordSpecs(file *ast.File) []recordSpec {
	var specs []recordSpec
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE || gd.Doc == nil {
			continue
		}
		var name, version string
		for _, c := range gd.Doc.List {
			if m := directiveRe.FindStringSubmatch(c.Text); m != nil {
				name, version = m[1], m[2]
			}
		}
		if name == "" {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			rs := recordSpec{goName: ts.Name.Name, name: name, version: version}
			for _, f := range st.Fields.List {
				typeStr := exprString(f.Type)
				for _, n := range f.Names {
					if !n.IsExported() {
						continue
					}
					rs.fields = append(rs.fields, fieldSpec{goName: n.Name, goType: typeStr})
				}
			}
			specs = append(specs, rs)
		}
	}
	return specs
}

func exprString(e ast.Expr) string {
	var buf bytes.Buffer
	fset := token.NewFileSet()
	if err := format.Node(&buf, fset, e); err != nil {
		return ""
	}
	return buf.String()
}

// render emits one RegisterRecord call per record, resolving each field's
// descriptor via metabin.DescriptorOf: on a zero-value literal for built-in
// kinds, or on a composite literal of the struct when the field's type
// matches one of the other specs in this same directory.
func render(pkgName string, specs []recordSpec) string {
	byGoName := make(map[string]recordSpec, len(specs))
	for _, s := range specs {
		byGoName[s.goName] = s
	}

	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	fmt.Fprintf(&b, "// Code generated by metabingen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "import (\n\t\"reflect\"\n\t\"unsafe\"\n\n\t\"github.com/metabin/metabin\"\n)\n\n")

	fmt.Fprintf(&b, "func mustDescriptorOf(t reflect.Type) metabin.Descriptor {\n")
	fmt.Fprintf(&b, "\td, err := metabin.DescriptorOf(t)\n\tif err != nil {\n\t\tpanic(err)\n\t}\n\treturn d\n}\n\n")

	fmt.Fprintf(&b, "func init() {\n")
	for _, s := range specs {
		fmt.Fprintf(&b, "\tmetabin.RegisterRecord[%s](%q, %s, func(int8) metabin.VersionInfo {\n", s.goName, s.name, s.version)
		fmt.Fprintf(&b, "\t\treturn metabin.VersionInfo{\n\t\t\tMembers: []metabin.Member{\n")
		for _, f := range s.fields {
			descExpr := fieldDescriptorExpr(f, byGoName)
			fmt.Fprintf(&b, "\t\t\t\tmetabin.Field(%q, unsafe.Offsetof(%s{}.%s), %s),\n", strings.ToLower(f.goName), s.goName, f.goName, descExpr)
		}
		fmt.Fprintf(&b, "\t\t\t},\n\t\t}\n\t})\n")
	}
	fmt.Fprintf(&b, "}\n")
	return b.String()
}

func fieldDescriptorExpr(f fieldSpec, byGoName map[string]recordSpec) string {
	if _, ok := byGoName[f.goType]; ok {
		return fmt.Sprintf("mustDescriptorOf(reflect.TypeOf(%s{}))", f.goType)
	}
	return fmt.Sprintf("mustDescriptorOf(reflect.TypeOf(%s(%s)))", f.goType, zeroLiteral(f.goType))
}

// zeroLiteral renders a zero-value expression usable as reflect.TypeOf's
// argument for primitive field types (int32(0), string(""), and so on).
func zeroLiteral(goType string) string {
	switch goType {
	case "string":
		return `""`
	case "bool":
		return "false"
	default:
		return "0"
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
