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

// Package types implements the schema type model: node kinds for every
// composite the schema language supports, their derived properties
// (alignment, fixity, fixed size, typestring), and name propagation
// through a Registry. It is grounded on the tagged-class hierarchy of
// the original GVariant schema compiler (see original_source), recast as
// a small Go interface plus one struct per kind instead of a class tree.
package types

import "fmt"

// BasicKind identifies one of the fixed basic scalar/string kinds.
type BasicKind string

const (
	Boolean    BasicKind = "boolean"
	Byte       BasicKind = "byte"
	Int16      BasicKind = "int16"
	Uint16     BasicKind = "uint16"
	Int32      BasicKind = "int32"
	Uint32     BasicKind = "uint32"
	Int64      BasicKind = "int64"
	Uint64     BasicKind = "uint64"
	Handle     BasicKind = "handle"
	Double     BasicKind = "double"
	String     BasicKind = "string"
	ObjectPath BasicKind = "objectpath"
	Signature  BasicKind = "signature"
)

// basicInfo is the fixed per-kind table from the schema language
// specification: (typestring char, is_fixed, fixed_size, c_type,
// annotation prefix, printf format or "" when none applies).
type basicInfo struct {
	typestring string
	fixed      bool
	size       uint64
	ctype      string
	prefix     string
	printf     string // empty for kinds with no direct printf conversion
}

// Annotation prefixes follow GVariant's own text-format convention: a
// kind needs a prefix only when its default literal syntax would be
// ambiguous or parsed as a different kind (e.g. a bare "42" reads as
// int32, so uint32/int16/uint16/int64/uint64/handle/byte all need one;
// a bare string or a value with a decimal point never does).
var basicTable = map[BasicKind]basicInfo{
	Boolean:    {"b", true, 1, "gboolean", "", ""},
	Byte:       {"y", true, 1, "guint8", "byte ", "%" + "u"},
	Int16:      {"n", true, 2, "gint16", "int16 ", "%" + "d"},
	Uint16:     {"q", true, 2, "guint16", "uint16 ", "%" + "u"},
	Int32:      {"i", true, 4, "gint32", "", "%" + "d"},
	Uint32:     {"u", true, 4, "guint32", "uint32 ", "%" + "u"},
	Int64:      {"x", true, 8, "gint64", "int64 ", "%" + "lld"},
	Uint64:     {"t", true, 8, "guint64", "uint64 ", "%" + "llu"},
	Handle:     {"h", true, 4, "guint32", "handle ", "%" + "u"},
	Double:     {"d", true, 8, "double", "", ""},
	String:     {"s", false, 1, "const char *", "", ""},
	ObjectPath: {"o", false, 1, "const char *", "objectpath ", ""},
	Signature:  {"g", false, 1, "const char *", "signature ", ""},
}

// IsBasicKind reports whether name is one of the fixed basic kinds.
func IsBasicKind(name string) bool {
	_, ok := basicTable[BasicKind(name)]
	return ok
}

// Basic is a leaf node for one of the fixed scalar/string kinds.
type Basic struct {
	Kind BasicKind
}

func NewBasic(kind BasicKind) *Basic {
	if _, ok := basicTable[kind]; !ok {
		panic(fmt.Sprintf("types: unknown basic kind %q", kind))
	}
	return &Basic{Kind: kind}
}

func (b *Basic) info() basicInfo { return basicTable[b.Kind] }

func (b *Basic) Typestring() string         { return b.info().typestring }
func (b *Basic) Alignment() uint64          { return b.info().size }
func (b *Basic) IsFixed() bool              { return b.info().fixed }
func (b *Basic) FixedSize() uint64 {
	if !b.IsFixed() {
		panic("types: FixedSize called on non-fixed basic type " + string(b.Kind))
	}
	return b.info().size
}
func (b *Basic) TypeName() string                  { return "" }
func (b *Basic) SetTypeName(name string, _ bool)   {} // no names for basic types
func (b *Basic) Children() []Type                  { return nil }
func (b *Basic) CType() string                     { return b.info().ctype }
func (b *Basic) AnnotationPrefix() string          { return b.info().prefix }
func (b *Basic) PrintfFormat() (string, bool)      { f := b.info().printf; return f, f != "" }
func (b *Basic) IsBasic() bool                     { return true }
