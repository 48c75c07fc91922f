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

package scanner

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flatpak/gvschema-gen/internal/schema/token"
)

type scanResult struct {
	tok token.Token
	lit string
}

func scanAll(t *testing.T, src string) []scanResult {
	t.Helper()
	var s Scanner
	s.Init("test.schema", []byte(src), func(pos token.Position, msg string) {
		t.Fatalf("unexpected scan error at %s: %s", pos, msg)
	})
	var got []scanResult
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		got = append(got, scanResult{tok, lit})
	}
	return got
}

func TestScanPunctuationAndIdents(t *testing.T) {
	got := scanAll(t, `type Pair { a: int32; b: ?byte; }`)
	want := []scanResult{
		{token.IDENT, "type"},
		{token.IDENT, "Pair"},
		{token.LBRACE, ""},
		{token.IDENT, "a"},
		{token.COLON, ""},
		{token.IDENT, "int32"},
		{token.SEMI, ""},
		{token.IDENT, "b"},
		{token.COLON, ""},
		{token.QMARK, ""},
		{token.IDENT, "byte"},
		{token.SEMI, ""},
		{token.RBRACE, ""},
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanSkipsComments(t *testing.T) {
	got := scanAll(t, "// line comment\ntype /* inline */ Foo int32;\n")
	want := []scanResult{
		{token.IDENT, "type"},
		{token.IDENT, "Foo"},
		{token.IDENT, "int32"},
		{token.SEMI, ""},
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanArrayAndDictBrackets(t *testing.T) {
	got := scanAll(t, `[]int32 [string]int32`)
	want := []scanResult{
		{token.LBRACK, ""},
		{token.RBRACK, ""},
		{token.IDENT, "int32"},
		{token.LBRACK, ""},
		{token.IDENT, "string"},
		{token.RBRACK, ""},
		{token.IDENT, "int32"},
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanReportsIllegalCharacter(t *testing.T) {
	var s Scanner
	var msgs []string
	s.Init("bad.schema", []byte("type Foo #;"), func(pos token.Position, msg string) {
		msgs = append(msgs, msg)
	})
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
	}
	qt.Assert(t, qt.Equals(len(msgs) > 0, true))
}

func TestPositionTracksLineAndColumn(t *testing.T) {
	var s Scanner
	s.Init("pos.schema", []byte("type A\nint32;"), func(token.Position, string) {})
	_, _, _ = s.Scan() // "type"
	_, _, _ = s.Scan() // "A"
	pos, tok, lit := s.Scan()
	qt.Assert(t, qt.Equals(tok, token.IDENT))
	qt.Assert(t, qt.Equals(lit, "int32"))
	qt.Assert(t, qt.Equals(pos.Line, 2))
	qt.Assert(t, qt.Equals(pos.Column, 1))
}
