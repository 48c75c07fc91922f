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

// Type is the interface every type-model node implements. It mirrors the
// derived-property queries of the original Type base class (typestring,
// set_typename, is_fixed, alignment, get_children) as a tagged set of Go
// structs rather than a class hierarchy.
type Type interface {
	// Typestring returns the type's canonical signature, e.g. "(ias)".
	Typestring() string

	// Alignment returns the type's required byte alignment.
	Alignment() uint64

	// IsFixed reports whether the type's serialized size is constant.
	IsFixed() bool

	// FixedSize returns the constant serialized size. It must only be
	// called when IsFixed reports true.
	FixedSize() uint64

	// TypeName returns the generated C identifier base name for this
	// type, or "" if the type is emitted only inline as part of its
	// parent (never as a standalone named type).
	TypeName() string

	// SetTypeName assigns a name to this type and propagates a derived
	// name to its children, the way the original set_typename /
	// propagate_typename pair does. A name already set is kept unless
	// override is true; override is only ever passed by the top-level
	// `type` declaration handler.
	SetTypeName(name string, override bool)

	// Children returns the type's immediate subtypes in declaration
	// order, for the post-order naming pass and the recursive emission
	// walk.
	Children() []Type
}

// basicHaver is implemented by nodes that can report whether they are a
// Basic (only Basic implements it), used by the auto-naming rules ("Arrayof<kind>", "Maybe<kind>") that only trigger over
// basic element types.
type basicHaver interface {
	IsBasic() bool
}

func isBasic(t Type) bool {
	b, ok := t.(basicHaver)
	return ok && b.IsBasic()
}

// AlignDown rounds value down to the nearest multiple of alignment, which
// must be a power of two.
func AlignDown(value, alignment uint64) uint64 {
	return value &^ (alignment - 1)
}

// AlignUp rounds value up to the nearest multiple of alignment, which must
// be a power of two.
func AlignUp(value, alignment uint64) uint64 {
	return AlignDown(value+alignment-1, alignment)
}

// setTypeNameDefault implements the common "set once unless overridden,
// then propagate" rule shared by every composite kind. Composite
// constructors call this from their SetTypeName method, passing a closure
// that performs the kind-specific propagation.
func setTypeNameDefault(cur *string, name string, override bool, propagate func(string)) {
	if *cur == "" || override {
		*cur = name
		propagate(name)
	}
}
