// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flatpak/gvschema-gen/internal/schema/ast"
)

func TestParseBasicTypeDecl(t *testing.T) {
	f, err := ParseFile("t.schema", []byte(`type Flag boolean;`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Decls, 1))
	qt.Assert(t, qt.Equals(f.Decls[0].Name, "Flag"))
	spec, ok := f.Decls[0].Spec.(*ast.BasicSpec)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(spec.Kind, "boolean"))
}

func TestParseStructWithAttributesAndNamedRef(t *testing.T) {
	src := `
type Pair {
  a: bigendian int32;
  b: byte;
};
type Wrapper {
  inner: Pair;
};
`
	f, err := ParseFile("t.schema", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Decls, 2))

	pair, ok := f.Decls[0].Spec.(*ast.StructSpec)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(pair.Fields, 2))
	qt.Assert(t, qt.DeepEquals(pair.Fields[0].Attributes, []string{"bigendian"}))

	wrapper, ok := f.Decls[1].Spec.(*ast.StructSpec)
	qt.Assert(t, qt.IsTrue(ok))
	named, ok := wrapper.Fields[0].Spec.(*ast.NamedSpec)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(named.Name, "Pair"))
}

func TestParseArrayDictMaybeVariant(t *testing.T) {
	src := `
type Names []string;
type Settings [string]int32;
type Maybe ?int32;
type Any variant;
`
	f, err := ParseFile("t.schema", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Decls, 4))

	_, ok := f.Decls[0].Spec.(*ast.ArraySpec)
	qt.Assert(t, qt.IsTrue(ok))

	dict, ok := f.Decls[1].Spec.(*ast.DictSpec)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(dict.Key.Kind, "string"))

	_, ok = f.Decls[2].Spec.(*ast.MaybeSpec)
	qt.Assert(t, qt.IsTrue(ok))

	_, ok = f.Decls[3].Spec.(*ast.VariantSpec)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseDictKeyMustBeBasic(t *testing.T) {
	_, err := ParseFile("t.schema", []byte(`type Bad [Named]int32;`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseUnexpectedTokenIsError(t *testing.T) {
	_, err := ParseFile("t.schema", []byte(`type Foo ;;`))
	qt.Assert(t, qt.IsNotNil(err))
}
