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

// Variant is the universal type. It is always named "variant", 8-aligned,
// and variable-length: a child value, a zero separator byte, and a
// trailing type-signature tail.
type Variant struct{}

func NewVariant() *Variant { return &Variant{} }

func (*Variant) Typestring() string       { return "v" }
func (*Variant) Alignment() uint64        { return 8 }
func (*Variant) IsFixed() bool            { return false }
func (*Variant) FixedSize() uint64        { panic("types: FixedSize called on Variant") }
func (*Variant) TypeName() string         { return "variant" }
func (*Variant) SetTypeName(string, bool) {} // variant's name is fixed
func (*Variant) Children() []Type         { return nil }
