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

// Package parser implements a recursive-descent parser for the schema
// grammar described in the schema language specification:
//
//	schema   := { typedef } .
//	typedef  := "type" ident typespec ";" .
//	typespec := basic | "variant" | array | dict | maybe | struct | named .
//	array    := "[" "]" typespec .
//	dict     := "[" basic "]" typespec .
//	maybe    := "?" typespec .
//	struct   := "{" { field } "}" .
//	field    := ident ":" { attr } typespec ";" .
//	named    := ident
package parser

import (
	"github.com/flatpak/gvschema-gen/internal/schema/ast"
	"github.com/flatpak/gvschema-gen/internal/schema/errors"
	"github.com/flatpak/gvschema-gen/internal/schema/scanner"
	"github.com/flatpak/gvschema-gen/internal/schema/token"
)

var basicKinds = map[string]bool{
	"boolean": true, "byte": true, "int16": true, "uint16": true,
	"int32": true, "uint32": true, "int64": true, "uint64": true,
	"handle": true, "double": true, "string": true, "objectpath": true,
	"signature": true,
}

var fieldAttributes = map[string]bool{
	"bigendian": true, "littleendian": true, "nativeendian": true,
}

// ParseFile parses a schema source file and returns its AST. Parse errors
// are returned as an errors.List; the caller should treat a non-empty
// returned error as fatal, per the schema language's error-handling
// contract (no partial recovery).
func ParseFile(filename string, src []byte) (*ast.File, error) {
	p := &parser{}
	p.init(filename, src)

	f := &ast.File{Filename: filename}
	for p.tok != token.EOF {
		decl := p.parseTypeDecl()
		if decl != nil {
			f.Decls = append(f.Decls, decl)
		}
		if len(p.errs) > 20 {
			break
		}
	}

	if len(p.errs) > 0 {
		p.errs.Sort()
		return nil, p.errs
	}
	return f, nil
}

type parser struct {
	sc   scanner.Scanner
	errs errors.List

	pos token.Position
	tok token.Token
	lit string
}

func (p *parser) init(filename string, src []byte) {
	p.sc.Init(filename, src, func(pos token.Position, msg string) {
		p.errs.Add(pos, "%s", msg)
	})
	p.next()
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.sc.Scan()
}

func (p *parser) errorf(pos token.Position, format string, args ...any) {
	p.errs.Add(pos, format, args...)
}

// expect consumes the current token if it matches tok, otherwise records an
// error and leaves the token stream positioned where it is (best-effort
// continuation, since the schema compiler never tries to recover a usable
// partial AST from a malformed file).
func (p *parser) expect(tok token.Token) token.Position {
	pos := p.pos
	if p.tok != tok {
		p.errorf(p.pos, "expected %s, got %s %q", tok, p.tok, p.lit)
	} else {
		p.next()
	}
	return pos
}

func (p *parser) expectIdent() (token.Position, string) {
	pos, lit := p.pos, p.lit
	if p.tok != token.IDENT {
		p.errorf(p.pos, "expected identifier, got %s", p.tok)
		return pos, ""
	}
	p.next()
	return pos, lit
}

func (p *parser) parseTypeDecl() *ast.TypeDecl {
	if p.tok != token.IDENT || p.lit != "type" {
		p.errorf(p.pos, "expected %q, got %s %q", "type", p.tok, p.lit)
		p.next()
		return nil
	}
	p.next()

	pos, name := p.expectIdent()
	spec := p.parseTypeSpec()
	p.expect(token.SEMI)

	return &ast.TypeDecl{Pos: pos, Name: name, Spec: spec}
}

func (p *parser) parseTypeSpec() ast.TypeSpec {
	switch {
	case p.tok == token.IDENT && basicKinds[p.lit]:
		pos, kind := p.pos, p.lit
		p.next()
		return &ast.BasicSpec{Position: pos, Kind: kind}

	case p.tok == token.IDENT && p.lit == "variant":
		pos := p.pos
		p.next()
		return &ast.VariantSpec{Position: pos}

	case p.tok == token.LBRACK:
		return p.parseArrayOrDict()

	case p.tok == token.QMARK:
		pos := p.pos
		p.next()
		return &ast.MaybeSpec{Position: pos, Elem: p.parseTypeSpec()}

	case p.tok == token.LBRACE:
		return p.parseStruct()

	case p.tok == token.IDENT:
		pos, name := p.pos, p.lit
		p.next()
		return &ast.NamedSpec{Position: pos, Name: name}

	default:
		p.errorf(p.pos, "unexpected token %s while parsing type", p.tok)
		p.next()
		return &ast.NamedSpec{Position: p.pos, Name: ""}
	}
}

func (p *parser) parseArrayOrDict() ast.TypeSpec {
	pos := p.expect(token.LBRACK)
	if p.tok == token.RBRACK {
		p.next()
		return &ast.ArraySpec{Position: pos, Elem: p.parseTypeSpec()}
	}

	// Dictionary: the bracketed type must be a basic type.
	if p.tok != token.IDENT || !basicKinds[p.lit] {
		p.errorf(p.pos, "dictionary key must be a basic type, got %s %q", p.tok, p.lit)
	}
	keyPos, keyKind := p.pos, p.lit
	if p.tok == token.IDENT {
		p.next()
	}
	p.expect(token.RBRACK)
	key := &ast.BasicSpec{Position: keyPos, Kind: keyKind}
	return &ast.DictSpec{Position: pos, Key: key, Value: p.parseTypeSpec()}
}

func (p *parser) parseStruct() ast.TypeSpec {
	pos := p.expect(token.LBRACE)
	s := &ast.StructSpec{Position: pos}
	for p.tok == token.IDENT {
		s.Fields = append(s.Fields, p.parseField())
	}
	p.expect(token.RBRACE)
	return s
}

func (p *parser) parseField() *ast.FieldDecl {
	pos, name := p.expectIdent()
	p.expect(token.COLON)

	var attrs []string
	for p.tok == token.IDENT && fieldAttributes[p.lit] {
		attrs = append(attrs, p.lit)
		p.next()
	}

	spec := p.parseTypeSpec()
	p.expect(token.SEMI)

	return &ast.FieldDecl{Pos: pos, Name: name, Attributes: attrs, Spec: spec}
}
