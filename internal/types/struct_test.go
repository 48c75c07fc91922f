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

package types

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

func TestStructFixedSizeWithPadding(t *testing.T) {
	// {a: int32; b: byte} — b follows 4-byte-aligned a with no padding
	// needed after it, but the struct's own alignment (4, from a) rounds
	// the fixed size from 5 up to 8.
	s := NewStruct([]*Field{
		{Name: "a", Spec: NewBasic(Int32)},
		{Name: "b", Spec: NewBasic(Byte)},
	})
	qt.Assert(t, qt.IsTrue(s.IsFixed()))
	qt.Assert(t, qt.Equals(s.Alignment(), uint64(4)))
	qt.Assert(t, qt.Equals(s.FixedSize(), uint64(8)))
}

func TestStructUnitSpecialCase(t *testing.T) {
	s := NewStruct(nil)
	qt.Assert(t, qt.IsTrue(s.IsFixed()))
	qt.Assert(t, qt.Equals(s.FixedSize(), uint64(1)))
}

func TestStructVariableWhenAnyFieldVariable(t *testing.T) {
	s := NewStruct([]*Field{
		{Name: "tag", Spec: NewBasic(Byte)},
		{Name: "name", Spec: NewBasic(String)},
		{Name: "vals", Spec: NewArray(NewBasic(Int32))},
	})
	qt.Assert(t, qt.IsTrue(!s.IsFixed()))
}

func TestStructTypestring(t *testing.T) {
	s := NewStruct([]*Field{
		{Name: "a", Spec: NewBasic(Int32)},
		{Name: "b", Spec: NewBasic(Byte)},
	})
	qt.Assert(t, qt.Equals(s.Typestring(), "(iy)"))
}

func TestStructNamePropagation(t *testing.T) {
	// An array of arrays has no auto-generated name (its element is not a
	// Basic), so it takes the name propagated from the enclosing struct.
	inner := NewArray(NewArray(NewBasic(Int32)))
	s := NewStruct([]*Field{
		{Name: "vals", Spec: inner},
	})
	s.SetTypeName("Mixed", true)
	qt.Assert(t, qt.Equals(s.TypeName(), "Mixed"))
	qt.Assert(t, qt.Equals(inner.TypeName(), "Mixed__vals"))
}

func TestSetTypeNameDoesNotOverrideWithoutFlag(t *testing.T) {
	a := NewArray(NewBasic(Int32))
	a.SetTypeName("First", true)
	a.SetTypeName("Second", false)
	qt.Assert(t, qt.Equals(a.TypeName(), "First"))
}

func TestArrayAutoNamesOverBasicElement(t *testing.T) {
	a := NewArray(NewBasic(Int32))
	qt.Assert(t, qt.Equals(a.TypeName(), "Arrayofint32"))
}

func TestDictAlignmentIsMaxOfKeyAndValue(t *testing.T) {
	d := NewDict(NewBasic(Byte), NewBasic(Int64))
	qt.Assert(t, qt.Equals(d.Alignment(), uint64(8)))
	qt.Assert(t, qt.Equals(d.Typestring(), "a{yx}"))
}

func TestMaybeAutoNamesOverBasicElement(t *testing.T) {
	m := NewMaybe(NewBasic(Uint16))
	qt.Assert(t, qt.Equals(m.TypeName(), "Maybeuint16"))
	qt.Assert(t, qt.Equals(m.Typestring(), "mq"))
}

func TestStructChildrenMatchFieldSpecsInOrder(t *testing.T) {
	aSpec := NewBasic(Int32)
	bSpec := NewBasic(Byte)
	s := NewStruct([]*Field{
		{Name: "a", Spec: aSpec},
		{Name: "b", Spec: bSpec},
	})
	want := []Type{aSpec, bSpec}
	if diff := cmp.Diff(want, s.Children(), cmp.Comparer(func(a, b Type) bool { return a == b })); diff != "" {
		t.Errorf("Children() mismatch (-want +got):\n%s", diff)
	}
}

func TestVariantNeverFixedAndAlwaysAligned8(t *testing.T) {
	v := NewVariant()
	qt.Assert(t, qt.IsTrue(!v.IsFixed()))
	qt.Assert(t, qt.Equals(v.Alignment(), uint64(8)))
	qt.Assert(t, qt.Equals(v.TypeName(), "variant"))
}
