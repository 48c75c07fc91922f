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

// Package ast defines the abstract syntax tree produced by the schema
// parser. Named references are left unresolved here; resolution against
// previously declared types happens in internal/types.
package ast

import "github.com/flatpak/gvschema-gen/internal/schema/token"

// File is the root node: an ordered list of top-level type declarations.
type File struct {
	Filename string
	Decls    []*TypeDecl
}

// TypeDecl is a top-level `type NAME TYPESPEC ;` declaration.
type TypeDecl struct {
	Pos  token.Position
	Name string
	Spec TypeSpec
}

// TypeSpec is the interface implemented by every type-specification node.
type TypeSpec interface {
	Pos() token.Position
	typeSpecNode()
}

// BasicSpec names one of the fixed basic kinds (e.g. "int32", "string").
type BasicSpec struct {
	Position token.Position
	Kind     string
}

// VariantSpec is the universal `variant` type.
type VariantSpec struct {
	Position token.Position
}

// ArraySpec is `[] TYPESPEC`.
type ArraySpec struct {
	Position token.Position
	Elem     TypeSpec
}

// DictSpec is `[ BASIC ] TYPESPEC`.
type DictSpec struct {
	Position token.Position
	Key      *BasicSpec
	Value    TypeSpec
}

// MaybeSpec is `? TYPESPEC`.
type MaybeSpec struct {
	Position token.Position
	Elem     TypeSpec
}

// FieldDecl is one field of a StructSpec.
type FieldDecl struct {
	Pos        token.Position
	Name       string
	Attributes []string // endianness attributes, parsed and ignored
	Spec       TypeSpec
}

// StructSpec is `{ field... }`.
type StructSpec struct {
	Position token.Position
	Fields   []*FieldDecl
}

// NamedSpec is a bare identifier referring to a previously declared type.
type NamedSpec struct {
	Position token.Position
	Name     string
}

func (n *BasicSpec) Pos() token.Position   { return n.Position }
func (n *VariantSpec) Pos() token.Position { return n.Position }
func (n *ArraySpec) Pos() token.Position   { return n.Position }
func (n *DictSpec) Pos() token.Position    { return n.Position }
func (n *MaybeSpec) Pos() token.Position   { return n.Position }
func (n *StructSpec) Pos() token.Position  { return n.Position }
func (n *NamedSpec) Pos() token.Position   { return n.Position }

func (*BasicSpec) typeSpecNode()   {}
func (*VariantSpec) typeSpecNode() {}
func (*ArraySpec) typeSpecNode()   {}
func (*DictSpec) typeSpecNode()    {}
func (*MaybeSpec) typeSpecNode()   {}
func (*StructSpec) typeSpecNode()  {}
func (*NamedSpec) typeSpecNode()   {}
