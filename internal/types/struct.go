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

// Field is one named member of a Struct.
type Field struct {
	Name       string
	Attributes []string // endianness attributes, parsed and ignored
	Spec       Type
}

// Struct is an ordered set of named fields. A Struct may be fixed or
// variable size; see IsFixed.
type Struct struct {
	Fields []*Field

	name      string
	fixed     bool
	fixedSize uint64
	alignment uint64
}

// NewStruct builds a Struct and eagerly computes its fixity, fixed size
// (when fixed), and alignment. This mirrors the inline bookkeeping the
// original StructType constructor performs over (pos, index, alignment)
// while walking fields left to right; the per-field (i, a, b, c) location
// descriptors consumed by the accessor emitter are a separate concern,
// computed on demand by internal/layout from the same Fields slice.
func NewStruct(fields []*Field) *Struct {
	s := &Struct{Fields: fields}

	var alignment uint64 = 1
	for _, f := range fields {
		if a := f.Spec.Alignment(); a > alignment {
			alignment = a
		}
	}
	s.alignment = alignment

	pos, variableFields := uint64(0), 0
	runAlignment := uint64(0)
	for _, f := range fields {
		if f.Spec.IsFixed() {
			a := f.Spec.Alignment()
			if runAlignment == 0 {
				runAlignment = a
			}
			pos = AlignUp(pos, a)
			pos += f.Spec.FixedSize()
		} else {
			variableFields++
			pos = 0
			runAlignment = 0
		}
	}

	s.fixed = variableFields == 0
	if s.fixed {
		if pos == 0 {
			s.fixedSize = 1 // unit struct special case
		} else {
			s.fixedSize = AlignUp(pos, s.alignment)
		}
	}

	return s
}

func (s *Struct) Typestring() string {
	out := "("
	for _, f := range s.Fields {
		out += f.Spec.Typestring()
	}
	return out + ")"
}

func (s *Struct) Alignment() uint64 { return s.alignment }
func (s *Struct) IsFixed() bool     { return s.fixed }
func (s *Struct) FixedSize() uint64 {
	if !s.fixed {
		panic("types: FixedSize called on non-fixed Struct")
	}
	return s.fixedSize
}
func (s *Struct) TypeName() string { return s.name }

func (s *Struct) Children() []Type {
	children := make([]Type, len(s.Fields))
	for i, f := range s.Fields {
		children[i] = f.Spec
	}
	return children
}

func (s *Struct) SetTypeName(name string, override bool) {
	setTypeNameDefault(&s.name, name, override, func(n string) {
		for _, f := range s.Fields {
			f.Spec.SetTypeName(n+"__"+f.Name, false)
		}
	})
}
