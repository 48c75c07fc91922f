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

// Array is a sequence of Elem. Alignment equals the alignment of Elem;
// an Array is never fixed-size (the schema language has no fixed-length
// array construct).
type Array struct {
	Elem Type

	name string
}

func NewArray(elem Type) *Array {
	a := &Array{Elem: elem}
	if isBasic(elem) {
		a.name = "Arrayof" + elem.(*Basic).Kind.kindName()
	}
	return a
}

func (a *Array) Typestring() string { return "a" + a.Elem.Typestring() }
func (a *Array) Alignment() uint64  { return a.Elem.Alignment() }
func (a *Array) IsFixed() bool      { return false }
func (a *Array) FixedSize() uint64  { panic("types: FixedSize called on non-fixed Array") }
func (a *Array) TypeName() string   { return a.name }
func (a *Array) Children() []Type   { return []Type{a.Elem} }

func (a *Array) SetTypeName(name string, override bool) {
	setTypeNameDefault(&a.name, name, override, func(n string) {
		a.Elem.SetTypeName(n+"__element", false)
	})
}

// kindName returns a basic kind's name as written in the schema, e.g.
// "int32", used to build an auto-generated container name like
// "Arrayofint32" (the "Arrayof<kind>" and "Maybe<kind>" rules).
func (k BasicKind) kindName() string {
	return string(k)
}
