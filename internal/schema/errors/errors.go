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

// Package errors defines the error values produced while parsing and
// compiling a schema.
package errors

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/flatpak/gvschema-gen/internal/schema/token"
)

// Error is the common interface implemented by every error this package
// produces.
type Error interface {
	error
	Position() token.Position
}

// SchemaError reports a malformed schema: syntax errors, unknown basic
// types, unresolved named references, or duplicate type definitions.
type SchemaError struct {
	Pos token.Position
	Msg string
}

func (e *SchemaError) Position() token.Position { return e.Pos }

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// UsageError reports a missing or extra command-line argument.
type UsageError struct {
	Msg string
}

func (e *UsageError) Position() token.Position { return token.Position{} }
func (e *UsageError) Error() string             { return e.Msg }

// InternalInvariantError reports a layout or registry postcondition
// violation. These indicate a bug in the generator, not a malformed
// schema; callers should treat them as assertions.
type InternalInvariantError struct {
	Msg string
}

func (e *InternalInvariantError) Position() token.Position { return token.Position{} }
func (e *InternalInvariantError) Error() string             { return "internal invariant violated: " + e.Msg }

// Fail panics with an InternalInvariantError. It is the generator's
// assertion primitive, recovered only at the top of main.
func Fail(format string, args ...any) {
	panic(&InternalInvariantError{Msg: fmt.Sprintf(format, args...)})
}

// List is a sortable collection of schema errors accumulated while parsing
// a single file.
type List []*SchemaError

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Add appends a new error to the list.
func (l *List) Add(pos token.Position, format string, args ...any) {
	*l = append(*l, &SchemaError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Sort orders the list by position, matching the order errors would be
// encountered scanning the file top to bottom.
func (l List) Sort() {
	slices.SortFunc(l, func(a, b *SchemaError) int {
		if c := cmp.Compare(a.Pos.Line, b.Pos.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos.Column, b.Pos.Column)
	})
}

// Print writes one message per line to w, prefixed by its position.
func Print(w io.Writer, l List) {
	for _, e := range l {
		fmt.Fprintln(w, e.Error())
	}
}
