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

import (
	"fmt"
	"strings"

	"github.com/flatpak/gvschema-gen/internal/layout"
	"github.com/flatpak/gvschema-gen/internal/types"
)

type commonData struct {
	CName      string
	FuncBase   string
	Typestring string
}

type fromVariantData struct {
	CName           string
	FuncBase        string
	VariantCName    string
	VariantFuncBase string
}

// execCommon emits the view typedef, typestring, and gvariant interop
// trio shared by every named kind except Variant itself.
func (g *generator) execCommon(cname, funcBase, typestring string) {
	g.exec("commonBase", commonData{CName: cname, FuncBase: funcBase, Typestring: typestring})
	g.exec("commonFromVariant", fromVariantData{
		CName:           cname,
		FuncBase:        funcBase,
		VariantCName:    g.n.TypeName("variant"),
		VariantFuncBase: g.n.FuncName("variant"),
	})
}

// cTypeOf returns the C type used to hold a value of type t: the declared
// scalar or pointer type for a Basic, or the named view struct for any
// composite (which, by the time emission runs, always carries a
// propagated typename).
func (g *generator) cTypeOf(t types.Type) string {
	if b, ok := t.(*types.Basic); ok {
		return b.CType()
	}
	return g.n.TypeName(t.TypeName())
}

// emitVariantSupport emits the Variant view's own typedef and accessors
// unconditionally, right after the header, so that every other kind's
// T_from_variant has something to call regardless of whether the schema
// itself declares a field of type `variant`.
func (g *generator) emitVariantSupport() {
	cname := g.n.TypeName("variant")
	funcBase := g.n.FuncName("variant")
	g.emitted["variant"] = true

	g.exec("commonBase", commonData{CName: cname, FuncBase: funcBase, Typestring: "v"})

	fmt.Fprintf(&g.w, `/* Scans backward from the end of the variant's bytes for the zero
   byte separating the child value from its trailing type signature. */
static inline const guint8 *
%sfind_separator (%s v)
{
  const guint8 *p = ((const guint8 *) v.base) + v.size - 1;
  while (p > (const guint8 *) v.base && *p != 0)
    p--;
  return p;
}

static inline const char *
%sget_type_string (%s v)
{
  return (const char *) (%sfind_separator (v) + 1);
}

static inline gconstpointer
%sget_child_base (%s v)
{
  return v.base;
}

static inline gsize
%sget_child_size (%s v)
{
  return (gsize) (%sfind_separator (v) - (const guint8 *) v.base);
}

static inline %s
%sdup (%s v)
{
  %s result;
  result.base = g_memdup2 (v.base, v.size);
  result.size = v.size;
  return result;
}

`, funcBase, cname, funcBase, cname, funcBase, funcBase, cname, funcBase, cname, funcBase, cname, funcBase, cname, cname)

	g.emitVariantFormat(cname, funcBase)
}

func (g *generator) emitArray(name string, a *types.Array) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)
	g.execCommon(cname, funcBase, a.Typestring())

	elem := a.Elem
	elemCType := g.cTypeOf(elem)
	_, elemIsBasic := elem.(*types.Basic)

	fmt.Fprintf(&g.w, "static inline gsize\n%sget_length (%s v)\n{\n", funcBase, cname)
	if elem.IsFixed() {
		fmt.Fprintf(&g.w, "  return v.size / %d;\n}\n\n", elem.FixedSize())
	} else {
		fmt.Fprintf(&g.w, "  if (v.size == 0)\n    return 0;\n  gsize w = gv_offset_width (v.size);\n  gsize end0 = gv_read_offset (v.base, v.size, w, 0);\n  return (v.size - end0) / w;\n}\n\n")
	}

	fmt.Fprintf(&g.w, "static inline %s\n%sget_at (%s v, gsize index)\n{\n", elemCType, funcBase, cname)
	if elem.IsFixed() {
		if elemIsBasic {
			fmt.Fprintf(&g.w, "  %s result;\n  memcpy (&result, ((const guint8 *) v.base) + index * %d, sizeof result);\n  return result;\n}\n\n",
				elemCType, elem.FixedSize())
		} else {
			fmt.Fprintf(&g.w, "  %s result;\n  result.base = ((const guint8 *) v.base) + index * %d;\n  result.size = %d;\n  return result;\n}\n\n",
				elemCType, elem.FixedSize(), elem.FixedSize())
		}
	} else {
		fmt.Fprintf(&g.w, "  gsize len = %sget_length (v);\n  gsize w = gv_offset_width (v.size);\n", funcBase)
		fmt.Fprintf(&g.w, "  gsize start = (index == 0) ? 0 : gv_align_up (gv_read_offset (v.base, v.size, w, len - index), %d);\n", elem.Alignment())
		fmt.Fprintf(&g.w, "  gsize end = gv_read_offset (v.base, v.size, w, len - index - 1);\n")
		if elemIsBasic {
			fmt.Fprintf(&g.w, "  return (%s) (((const guint8 *) v.base) + start);\n}\n\n", elemCType)
		} else {
			fmt.Fprintf(&g.w, "  %s result;\n  result.base = ((const guint8 *) v.base) + start;\n  result.size = end - start;\n  return result;\n}\n\n", elemCType)
		}
	}

	g.emitArrayFormat(name, a)
}

func (g *generator) emitDict(name string, d *types.Dict) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)
	g.execCommon(cname, funcBase, d.Typestring())

	// A dict's entries are laid out exactly like a two-field struct
	// {key, value}; reuse the struct layout engine and the same
	// per-field body builder used for named struct fields.
	entryFields := []*types.Field{
		{Name: "key", Spec: d.Key},
		{Name: "value", Spec: d.Value},
	}
	entry := types.NewStruct(entryFields)
	entryLayout := layout.ComputeStruct(entryFields)

	fmt.Fprintf(&g.w, "static inline gsize\n%sget_length (%s v)\n{\n", funcBase, cname)
	if entry.IsFixed() {
		fmt.Fprintf(&g.w, "  return v.size / %d;\n}\n\n", entry.FixedSize())
	} else {
		fmt.Fprintf(&g.w, "  if (v.size == 0)\n    return 0;\n  gsize w = gv_offset_width (v.size);\n  gsize end0 = gv_read_offset (v.base, v.size, w, 0);\n  return (v.size - end0) / w;\n}\n\n")
	}

	fmt.Fprintf(&g.w, "static inline VariantChunk\n%sget_at (%s v, gsize index)\n{\n  VariantChunk result;\n", funcBase, cname)
	if entry.IsFixed() {
		fmt.Fprintf(&g.w, "  result.base = ((const guint8 *) v.base) + index * %d;\n  result.size = %d;\n  return result;\n}\n\n",
			entry.FixedSize(), entry.FixedSize())
	} else {
		fmt.Fprintf(&g.w, "  gsize len = %sget_length (v);\n  gsize w = gv_offset_width (v.size);\n", funcBase)
		fmt.Fprintf(&g.w, "  gsize start = (index == 0) ? 0 : gv_align_up (gv_read_offset (v.base, v.size, w, len - index), %d);\n", entry.Alignment())
		fmt.Fprintf(&g.w, "  gsize end = gv_read_offset (v.base, v.size, w, len - index - 1);\n")
		fmt.Fprintf(&g.w, "  result.base = ((const guint8 *) v.base) + start;\n  result.size = end - start;\n  return result;\n}\n\n")
	}

	keyType, keyBody := g.fieldBody("e", "e.size", entryFields[0], entryLayout.Fields[0], entryLayout.FramingOffsetCount)
	fmt.Fprintf(&g.w, "static inline %s\n%sentry_get_key (VariantChunk e)\n{\n%s}\n\n", keyType, funcBase, keyBody)

	valType, valBody := g.fieldBody("e", "e.size", entryFields[1], entryLayout.Fields[1], entryLayout.FramingOffsetCount)
	fmt.Fprintf(&g.w, "static inline %s\n%sentry_get_value (VariantChunk e)\n{\n%s}\n\n", valType, funcBase, valBody)

	compareExpr := "k == key"
	switch d.Key.Kind {
	case types.String, types.ObjectPath, types.Signature:
		compareExpr = "strcmp (k, key) == 0"
	}

	fmt.Fprintf(&g.w, `static inline gboolean
%slookup (%s v, %s key, %s *out)
{
  gsize len = %sget_length (v);
  for (gsize i = 0; i < len; i++)
    {
      VariantChunk e = %sget_at (v, i);
      %s k = %sentry_get_key (e);
      if (%s)
        {
          if (out)
            *out = %sentry_get_value (e);
          return TRUE;
        }
    }
  return FALSE;
}

`, funcBase, cname, keyType, valType, funcBase, funcBase, keyType, funcBase, compareExpr, funcBase)

	g.emitDictFormat(name, d)
}

func (g *generator) emitMaybe(name string, m *types.Maybe) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)
	g.execCommon(cname, funcBase, m.Typestring())

	fmt.Fprintf(&g.w, "static inline gboolean\n%shas_value (%s v)\n{\n  return v.size != 0;\n}\n\n", funcBase, cname)

	elem := m.Elem
	elemType := g.cTypeOf(elem)
	fmt.Fprintf(&g.w, "static inline %s\n%sget_value (%s v)\n{\n  g_assert (%shas_value (v));\n", elemType, funcBase, cname, funcBase)

	if basic, ok := elem.(*types.Basic); ok {
		if basic.IsFixed() {
			fmt.Fprintf(&g.w, "  %s result;\n  memcpy (&result, v.base, sizeof result);\n  return result;\n}\n\n", elemType)
		} else {
			fmt.Fprintf(&g.w, "  return (%s) v.base;\n}\n\n", elemType)
		}
		g.emitMaybeFormat(name, m)
		return
	}
	if elem.IsFixed() {
		fmt.Fprintf(&g.w, "  %s result;\n  result.base = v.base;\n  result.size = v.size;\n  return result;\n}\n\n", elemType)
	} else {
		fmt.Fprintf(&g.w, "  %s result;\n  result.base = v.base;\n  result.size = v.size - 1;\n  return result;\n}\n\n", elemType)
	}

	g.emitMaybeFormat(name, m)
}

func (g *generator) emitStruct(name string, s *types.Struct) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)
	g.execCommon(cname, funcBase, s.Typestring())

	sl := layout.ComputeStruct(s.Fields)
	fmt.Fprintf(&g.w, "static const gsize %sframing_offset_count = %d;\n\n", funcBase, sl.FramingOffsetCount)

	for i, f := range s.Fields {
		returnType, body := g.fieldBody("v", "v.size", f, sl.Fields[i], sl.FramingOffsetCount)
		fmt.Fprintf(&g.w, "static inline %s\n%sget_%s (%s v)\n{\n%s}\n\n", returnType, funcBase, f.Name, cname, body)
	}

	g.emitStructFormat(name, s)
}

// fieldBody computes the offset for field f laid out at loc within a
// container accessed through the expression containerExpr (its byte size
// given by sizeExpr), and returns the C return type and function body
// implementing spec.md §4.5's struct-field getter contract. It is shared
// between named struct fields and dict entry key/value getters, which
// share the same (i, a, b, c) offset algebra over a synthetic two-field
// struct.
func (g *generator) fieldBody(containerExpr, sizeExpr string, f *types.Field, loc layout.FieldLocation, framingCount int) (string, string) {
	var b strings.Builder

	needWidth := loc.I >= 0 || !f.Spec.IsFixed()
	if needWidth {
		fmt.Fprintf(&b, "  gsize w = gv_offset_width (%s);\n", sizeExpr)
	}

	offsetExpr := "0"
	if loc.I >= 0 {
		fmt.Fprintf(&b, "  gsize end_of_frame = gv_read_offset (%s.base, %s, w, %d);\n", containerExpr, sizeExpr, loc.I)
		offsetExpr = "end_of_frame"
	}
	fmt.Fprintf(&b, "  gsize offset = ((%s + %d + %d) & ~(gsize) %d) + %d;\n", offsetExpr, loc.A, loc.B, loc.B, loc.C)

	if f.Spec.IsFixed() {
		if basic, ok := f.Spec.(*types.Basic); ok {
			fmt.Fprintf(&b, "  %s result;\n  memcpy (&result, ((const guint8 *) %s.base) + offset, sizeof result);\n  return result;\n",
				basic.CType(), containerExpr)
			return basic.CType(), b.String()
		}
		cname := g.cTypeOf(f.Spec)
		fmt.Fprintf(&b, "  %s result;\n  result.base = ((const guint8 *) %s.base) + offset;\n  result.size = %d;\n  return result;\n",
			cname, containerExpr, f.Spec.FixedSize())
		return cname, b.String()
	}

	var endExpr string
	if loc.IsLast {
		endExpr = fmt.Sprintf("%s - w * %d", sizeExpr, framingCount)
	} else {
		endExpr = fmt.Sprintf("gv_read_offset (%s.base, %s, w, %d)", containerExpr, sizeExpr, loc.I+1)
	}

	if basic, ok := f.Spec.(*types.Basic); ok {
		fmt.Fprintf(&b, "  return (%s) (((const guint8 *) %s.base) + offset);\n", basic.CType(), containerExpr)
		return basic.CType(), b.String()
	}
	cname := g.cTypeOf(f.Spec)
	fmt.Fprintf(&b, "  gsize end = %s;\n  %s result;\n  result.base = ((const guint8 *) %s.base) + offset;\n  result.size = end - offset;\n  return result;\n",
		endExpr, cname, containerExpr)
	return cname, b.String()
}
