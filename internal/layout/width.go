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

// Package layout computes the offset math the serialization format
// requires to resolve variable-width fields inside containers: the
// container-size-to-slot-width law, and the per-struct-field location
// descriptors consumed by the accessor emitter.
package layout

// SlotWidth returns the byte width of the framing offsets a container of
// total size must use, per the container-size-to-slot-width law. It is
// monotone in size and only ever returns one of {1, 2, 4, 8}.
func SlotWidth(size uint64) uint64 {
	switch {
	case size <= 0xFF:
		return 1
	case size <= 0xFFFF:
		return 2
	case size <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}
