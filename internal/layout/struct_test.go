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

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flatpak/gvschema-gen/internal/types"
)

func field(name string, spec types.Type) *types.Field {
	return &types.Field{Name: name, Spec: spec}
}

func TestComputeStructAllFixedFieldsNeedNoFramingOffsets(t *testing.T) {
	sl := ComputeStruct([]*types.Field{
		field("a", types.NewBasic(types.Int32)),
		field("b", types.NewBasic(types.Byte)),
	})
	qt.Assert(t, qt.Equals(sl.FramingOffsetCount, 0))
	for _, fl := range sl.Fields {
		qt.Assert(t, qt.Equals(fl.I, -1))
	}
	qt.Assert(t, qt.IsTrue(sl.Fields[1].IsLast))
}

func TestComputeStructSingleTrailingVariableFieldNeedsNoFramingOffset(t *testing.T) {
	// The only variable field is also the last field: its end is implied
	// by the container size, so it needs no stored framing offset.
	sl := ComputeStruct([]*types.Field{
		field("name", types.NewBasic(types.String)),
	})
	qt.Assert(t, qt.Equals(sl.FramingOffsetCount, 0))
	qt.Assert(t, qt.Equals(sl.Fields[0].I, -1))
	qt.Assert(t, qt.IsTrue(sl.Fields[0].IsLast))
}

func TestComputeStructTwoVariableFieldsNeedOneFramingOffset(t *testing.T) {
	// Only the non-last variable field needs a stored framing offset; the
	// last field's end still comes from the container size.
	sl := ComputeStruct([]*types.Field{
		field("name", types.NewBasic(types.String)),
		field("vals", types.NewArray(types.NewBasic(types.Int32))),
	})
	qt.Assert(t, qt.Equals(sl.FramingOffsetCount, 1))
	qt.Assert(t, qt.Equals(sl.Fields[0].I, -1))
	qt.Assert(t, qt.Equals(sl.Fields[1].I, 0))
	qt.Assert(t, qt.IsTrue(!sl.Fields[0].IsLast))
	qt.Assert(t, qt.IsTrue(sl.Fields[1].IsLast))
}

func TestComputeStructFixedFieldAfterVariableFieldStillNeedsFramingOffset(t *testing.T) {
	// The variable field is no longer last (a fixed field follows it), so
	// its end can't be inferred from the container size and it needs a
	// stored framing offset even though it's the only variable field.
	sl := ComputeStruct([]*types.Field{
		field("name", types.NewBasic(types.String)),
		field("tag", types.NewBasic(types.Byte)),
	})
	qt.Assert(t, qt.Equals(sl.FramingOffsetCount, 1))
	qt.Assert(t, qt.Equals(sl.Fields[1].I, 0))
	qt.Assert(t, qt.IsTrue(sl.Fields[1].IsLast))
}

func TestComputeStructPaddingBetweenDifferentlyAlignedFixedFields(t *testing.T) {
	// byte then int32: the int32 field needs 3 bytes of padding inserted
	// before it, expressed as a nonzero B/C in its location descriptor.
	sl := ComputeStruct([]*types.Field{
		field("b", types.NewBasic(types.Byte)),
		field("a", types.NewBasic(types.Int32)),
	})
	qt.Assert(t, qt.Equals(sl.Fields[1].B, uint64(3)))
	qt.Assert(t, qt.Equals(sl.Fields[1].I, -1))
}

func TestComputeStructEmptyFieldListYieldsNoFramingOffsets(t *testing.T) {
	sl := ComputeStruct(nil)
	qt.Assert(t, qt.Equals(sl.FramingOffsetCount, 0))
	qt.Assert(t, qt.HasLen(sl.Fields, 0))
}
