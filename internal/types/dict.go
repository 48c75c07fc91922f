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

// Dict is an array of key-value entries. Key must be a Basic. Alignment
// is the max of the key's and value's alignment.
type Dict struct {
	Key   *Basic
	Value Type

	name string
}

func NewDict(key *Basic, value Type) *Dict {
	return &Dict{Key: key, Value: value}
}

func (d *Dict) Typestring() string {
	return "a{" + d.Key.Typestring() + d.Value.Typestring() + "}"
}
func (d *Dict) Alignment() uint64 {
	if d.Value.Alignment() > d.Key.Alignment() {
		return d.Value.Alignment()
	}
	return d.Key.Alignment()
}
func (d *Dict) IsFixed() bool     { return false }
func (d *Dict) FixedSize() uint64 { panic("types: FixedSize called on non-fixed Dict") }
func (d *Dict) TypeName() string  { return d.name }
func (d *Dict) Children() []Type  { return []Type{d.Key, d.Value} }

func (d *Dict) SetTypeName(name string, override bool) {
	setTypeNameDefault(&d.name, name, override, func(n string) {
		d.Value.SetTypeName(n+"__value", false)
	})
}
