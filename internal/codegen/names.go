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

package codegen

import "strings"

// namer turns a type's schema-level typename into the C identifiers the
// emitter uses for its struct and its functions, applying the
// user-supplied --prefix the way the command-line surface describes:
// the type-name prefix capitalizes its first character, the
// function-name prefix lower-cases its first character and appends "_".
type namer struct {
	typePrefix string
	funcPrefix string
}

func newNamer(prefix string) *namer {
	if prefix == "" {
		return &namer{}
	}
	return &namer{
		typePrefix: capitalize(prefix),
		funcPrefix: lowerFirst(prefix) + "_",
	}
}

// TypeName returns the emitted C struct-typedef name for a schema
// typename, e.g. "Foo" -> "PrefixFoo".
func (n *namer) TypeName(typename string) string {
	return n.typePrefix + typename
}

// FuncName returns the emitted C symbol prefix for a schema typename's
// functions, e.g. "Foo" -> "prefix_foo_" (the emitter appends the verb:
// "get_length", "format", and so on).
func (n *namer) FuncName(typename string) string {
	return n.funcPrefix + decapitalizeRuns(typename) + "_"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// decapitalizeRuns turns a generated CamelCase / "Outer__field" typename
// into a lower_snake C symbol stem, preserving the "__" struct-field
// separators literally since they already read well in C identifiers.
func decapitalizeRuns(typename string) string {
	var b strings.Builder
	for i, r := range typename {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
