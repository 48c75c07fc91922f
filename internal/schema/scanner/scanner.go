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

// Package scanner implements a lexer for the schema language. It takes a
// []byte as source which can then be tokenized through repeated calls to
// Scan.
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/flatpak/gvschema-gen/internal/schema/token"
)

// ErrorHandler is invoked for every lexical error encountered.
type ErrorHandler func(pos token.Position, msg string)

// A Scanner holds the scanning state for a single source file. It must be
// initialized with Init before use.
type Scanner struct {
	filename string
	src      []byte
	err      ErrorHandler

	ch         rune
	offset     int
	rdOffset   int
	line       int
	lineOffset int

	ErrorCount int
}

// Init prepares s to tokenize src. filename is used only for position
// reporting.
func (s *Scanner) Init(filename string, src []byte, err ErrorHandler) {
	s.filename = filename
	s.src = src
	s.err = err
	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.line = 1
	s.lineOffset = 0
	s.ErrorCount = 0
	s.next()
}

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.line++
			s.lineOffset = s.offset
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.error(s.offset, "illegal character NUL")
		case r >= utf8.RuneSelf:
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.line++
			s.lineOffset = s.offset
		}
		s.ch = -1
	}
}

func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) error(offset int, msg string) {
	s.ErrorCount++
	if s.err != nil {
		s.err(s.position(offset), msg)
	}
}

func (s *Scanner) position(offset int) token.Position {
	return token.Position{
		Filename: s.filename,
		Offset:   offset,
		Line:     s.line,
		Column:   offset - s.lineOffset + 1,
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

func (s *Scanner) scanLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.next()
	}
}

func (s *Scanner) scanBlockComment() {
	// s.ch == '*' just after having consumed "/"
	s.next()
	for {
		if s.ch < 0 {
			s.error(s.offset, "comment not terminated")
			return
		}
		ch := s.ch
		s.next()
		if ch == '*' && s.ch == '/' {
			s.next()
			return
		}
	}
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isLetter(s.ch) || isDigit(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// Scan returns the next token, its literal text (for IDENT), and its
// position. Comments are always skipped and never returned as tokens.
func (s *Scanner) Scan() (pos token.Position, tok token.Token, lit string) {
scanAgain:
	s.skipWhitespace()

	pos = s.position(s.offset)

	switch ch := s.ch; {
	case isLetter(ch):
		lit = s.scanIdentifier()
		tok = token.IDENT
		return pos, tok, lit
	default:
		s.next()
		switch ch {
		case -1:
			tok = token.EOF
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case ':':
			tok = token.COLON
		case ';':
			tok = token.SEMI
		case '?':
			tok = token.QMARK
		case '/':
			if s.ch == '/' {
				s.scanLineComment()
				goto scanAgain
			} else if s.ch == '*' {
				s.scanBlockComment()
				goto scanAgain
			}
			s.error(pos.Offset, fmt.Sprintf("illegal character %#U", ch))
			tok = token.ILLEGAL
		default:
			s.error(pos.Offset, fmt.Sprintf("illegal character %#U", ch))
			tok = token.ILLEGAL
		}
	}
	return pos, tok, lit
}
