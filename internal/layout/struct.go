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

package layout

import "github.com/flatpak/gvschema-gen/internal/types"

// FieldLocation is the (i, a, b, c) location descriptor of one struct
// field: the field's offset inside the struct body is
//
//	((end_of_frame_i + a + b) & ~b) + c
//
// where end_of_frame_i is 0 when I == -1, or the value of the I-th
// framing offset read from the tail of the body otherwise.
type FieldLocation struct {
	I      int
	A, B, C uint64
	// IsLast marks the final field of the struct. Only meaningful
	// (affects how the emitter computes the field's end) when that field
	// is also variable-sized: its end is the container size minus the
	// framing-offset-table size, not a read of the (I+1)-th offset.
	IsLast bool
}

// StructLayout carries the per-field location descriptors of a struct
// plus the derived framing-offset-table size.
type StructLayout struct {
	Fields []FieldLocation

	// FramingOffsetCount is the number of trailing framing-offset slots
	// the emitted struct body carries: one per non-last variable-sized
	// field. The correct rule (see open question in the schema
	// specification) excludes fixed-size fields entirely and excludes
	// the terminal variable field, whose end is implied by the
	// container size rather than stored explicitly.
	FramingOffsetCount int
}

// ComputeStruct runs the offset-math algorithm over fields in order and
// returns the resulting per-field descriptors and framing-offset count.
func ComputeStruct(fields []*types.Field) *StructLayout {
	sl := &StructLayout{Fields: make([]FieldLocation, len(fields))}

	i := -1
	var a, b, c uint64
	variableCount := 0

	for idx, f := range fields {
		d := f.Spec.Alignment() - 1
		fixed := f.Spec.IsFixed()

		if d <= b {
			c = alignWithMask(c, d)
		} else {
			a = a + alignWithMask(c, b)
			b = d
			c = 0
		}

		sl.Fields[idx] = FieldLocation{I: i, A: a, B: b, C: c}

		if fixed {
			c += f.Spec.FixedSize()
		} else {
			variableCount++
			i++
			a, b, c = 0, 0, 0
		}
	}

	if n := len(fields); n > 0 {
		sl.Fields[n-1].IsLast = true
		if !fields[n-1].Spec.IsFixed() {
			variableCount--
		}
	}
	sl.FramingOffsetCount = variableCount

	return sl
}

// alignWithMask rounds value up to a multiple of mask+1, where mask is an
// alignment-minus-one bitmask (e.g. 3 for 4-byte alignment). It is the
// masked form of types.AlignUp used throughout the offset-math rules.
func alignWithMask(value, mask uint64) uint64 {
	return (value + mask) &^ mask
}
