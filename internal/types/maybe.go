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

// Maybe is an optional Elem: present iff the serialized byte-size is
// nonzero. Alignment equals the alignment of Elem.
type Maybe struct {
	Elem Type

	name string
}

func NewMaybe(elem Type) *Maybe {
	m := &Maybe{Elem: elem}
	if isBasic(elem) {
		m.name = "Maybe" + elem.(*Basic).Kind.kindName()
	}
	return m
}

func (m *Maybe) Typestring() string { return "m" + m.Elem.Typestring() }
func (m *Maybe) Alignment() uint64  { return m.Elem.Alignment() }
func (m *Maybe) IsFixed() bool      { return false }
func (m *Maybe) FixedSize() uint64  { panic("types: FixedSize called on non-fixed Maybe") }
func (m *Maybe) TypeName() string   { return m.name }
func (m *Maybe) Children() []Type   { return []Type{m.Elem} }

func (m *Maybe) SetTypeName(name string, override bool) {
	setTypeNameDefault(&m.name, name, override, func(n string) {
		m.Elem.SetTypeName(n+"__element", false)
	})
}
