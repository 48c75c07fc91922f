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

// Package codegen emits C source implementing zero-copy accessors and
// textual formatters for a name-resolved, layout-augmented schema type
// tree. The generator is a small struct wrapping a buffer and an
// explicit exec helper around text/template, targeting C rather than
// Go, with no encoder.
package codegen

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/flatpak/gvschema-gen/internal/types"
)

// Header carries the provenance information stamped into the generated
// file's leading comment. Filename is always present; Digest and
// GenerationID are empty unless --stamp was passed, in which case the
// caller computes them (schema content digest, invocation id) before
// calling Generate — codegen itself never decides whether to stamp.
type Header struct {
	Filename     string
	Digest       string
	GenerationID string
}

// Options configures a single Generate call.
type Options struct {
	Prefix string
}

// Generate walks every named type in reg, in declaration order, and
// emits the C source implementing its view struct, accessors, and
// formatter, plus any anonymous subtype that itself carries a typename
// (propagated names, auto-named array/maybe-of-basic, Variant). Each
// typename is emitted exactly once even when reachable from more than
// one named type, mirroring the original compiler's "generated" set.
func Generate(reg *types.Registry, hdr Header, opts Options) (string, error) {
	g := &generator{
		n:         newNamer(opts.Prefix),
		emitted:   map[string]bool{},
		templates: mustTemplates(),
	}

	g.execHeader(hdr)
	g.emitVariantSupport()

	for _, t := range reg.Declared() {
		g.emitTree(t)
	}

	g.emitRuntimeSupport()

	if g.err != nil {
		return "", g.err
	}
	return g.w.String(), nil
}

type generator struct {
	n         *namer
	emitted   map[string]bool
	templates *template.Template

	// typeTable accumulates one entry per composite named type emitted so
	// far, consumed by emitRuntimeSupport to build gv_type_table — the
	// set of concrete layouts a variant's contents can be resolved
	// against when formatted deeply.
	typeTable []typeTableEntry

	w   bytes.Buffer
	err error
}

func (g *generator) addErr(err error) {
	if err != nil && g.err == nil {
		g.err = err
	}
}

// exec renders template name with data into the sink, recording any
// execution error (an internal bug — a malformed template — rather than
// a schema error, since template data comes entirely from the already
// name-resolved, layout-augmented type tree).
func (g *generator) exec(name string, data any) {
	if err := g.templates.ExecuteTemplate(&g.w, name, data); err != nil {
		g.addErr(fmt.Errorf("codegen: executing template %q: %w", name, err))
	}
}

func (g *generator) execHeader(hdr Header) {
	g.exec("header", hdr)
}

// emitTree performs the post-order walk the original TypeDef.generate
// does: emit every named child before the parent, and never emit the
// same typename twice.
func (g *generator) emitTree(t types.Type) {
	for _, c := range t.Children() {
		g.emitTree(c)
	}
	name := t.TypeName()
	if name == "" || g.emitted[name] {
		return
	}
	g.emitted[name] = true
	g.emitType(name, t)
}

func (g *generator) emitType(name string, t types.Type) {
	switch n := t.(type) {
	case *types.Array:
		g.emitArray(name, n)
	case *types.Dict:
		g.emitDict(name, n)
	case *types.Maybe:
		g.emitMaybe(name, n)
	case *types.Struct:
		g.emitStruct(name, n)
		// *types.Basic is never a standalone named type (see
		// types.Basic.TypeName) and *types.Variant is emitted
		// unconditionally by emitVariantSupport before this walk starts,
		// so neither case reaches here.
	}
}
