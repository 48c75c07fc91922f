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
)

func TestSlotWidthBoundaries(t *testing.T) {
	cases := []struct {
		size uint64
		want uint64
	}{
		{0, 1},
		{0xFF, 1},
		{0x100, 2},
		{0xFFFF, 2},
		{0x10000, 4},
		{0xFFFFFFFF, 4},
		{0x100000000, 8},
	}
	for _, c := range cases {
		qt.Assert(t, qt.Equals(SlotWidth(c.size), c.want))
	}
}

func TestSlotWidthIsMonotone(t *testing.T) {
	prev := SlotWidth(0)
	for _, size := range []uint64{0xFF, 0x100, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000} {
		w := SlotWidth(size)
		qt.Assert(t, qt.IsTrue(w >= prev))
		prev = w
	}
}
