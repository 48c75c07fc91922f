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

	"github.com/flatpak/gvschema-gen/internal/types"
)

// typeTableEntry records one named composite type's erased formatter for
// gv_type_table, the lookup a variant's contents are resolved against
// when formatting them deeply rather than by signature alone.
type typeTableEntry struct {
	Typestring string
	FuncBase   string
}

// execPrint emits T_print, the "wrap in a fresh GString and hand back an
// owned C string" convenience every named kind's T_format gets.
func (g *generator) execPrint(cname, funcBase string) {
	fmt.Fprintf(&g.w, `static inline char *
%sprint (%s v, gboolean annotate_types)
{
  GString *sink = g_string_new (NULL);
  %sformat (v, sink, annotate_types);
  return g_string_free (sink, FALSE);
}

`, funcBase, cname, funcBase)
}

// registerErased emits the (base, size)-only wrapper around a composite
// kind's T_format and records it in the type table gv_format_dynamic
// consults when formatting a variant's contents by signature.
func (g *generator) registerErased(cname, funcBase, typestring string) {
	fmt.Fprintf(&g.w, `static void
%sformat_erased (gconstpointer base, gsize size, GString *sink, gboolean annotate)
{
  %s v;
  v.base = base;
  v.size = size;
  %sformat (v, sink, annotate);
}

`, funcBase, cname, funcBase)
	g.typeTable = append(g.typeTable, typeTableEntry{Typestring: typestring, FuncBase: funcBase})
}

// formatValue writes the statements that format a value of type t held
// in valueExpr (already the correct C type — a basic scalar/pointer or a
// named composite view) into sink, gated by the annotation flag given by
// annotateExpr, which is either the literal "TRUE"/"FALSE" (known at
// generation time, e.g. every struct field but the first) or a runtime
// boolean expression (e.g. "annotate_types && i == 0" inside an array
// loop). Composite values manage their own annotation internally — only
// a bare basic value needs its prefix text emitted at the call site.
func (g *generator) formatValue(b *strings.Builder, t types.Type, valueExpr, annotateExpr string) {
	basic, ok := t.(*types.Basic)
	if !ok {
		fmt.Fprintf(b, "  %sformat (%s, sink, %s);\n", g.n.FuncName(t.TypeName()), valueExpr, annotateExpr)
		return
	}

	switch basic.Kind {
	case types.Boolean:
		fmt.Fprintf(b, "  g_string_append (sink, (%s) ? \"true\" : \"false\");\n", valueExpr)
	case types.Double:
		fmt.Fprintf(b, "  gv_format_double (sink, (%s));\n", valueExpr)
	case types.String, types.ObjectPath, types.Signature:
		if prefix := basic.AnnotationPrefix(); prefix != "" {
			fmt.Fprintf(b, "  if (%s)\n    g_string_append (sink, %q);\n", annotateExpr, prefix)
		}
		fmt.Fprintf(b, "  gv_escape_string (sink, (%s));\n", valueExpr)
	default:
		pf, _ := basic.PrintfFormat()
		if prefix := basic.AnnotationPrefix(); prefix != "" {
			fmt.Fprintf(b, "  if (%s)\n    g_string_append (sink, %q);\n", annotateExpr, prefix)
		}
		fmt.Fprintf(b, "  g_string_append_printf (sink, \"%s\", (%s) (%s));\n", pf, castTypeForPrintf(basic.Kind), valueExpr)
	}
}

// isPrintfable reports whether t can participate in a printf-coalesced
// run: a basic kind with a direct printf conversion. Boolean, double,
// string-like kinds and every composite need their own statement.
func isPrintfable(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	if !ok {
		return false
	}
	_, has := basic.PrintfFormat()
	return has
}

func castTypeForPrintf(k types.BasicKind) string {
	switch k {
	case types.Byte, types.Uint16, types.Uint32, types.Handle:
		return "unsigned int"
	case types.Int16, types.Int32:
		return "int"
	case types.Int64:
		return "long long"
	case types.Uint64:
		return "unsigned long long"
	default:
		return ""
	}
}

func (g *generator) emitArrayFormat(name string, a *types.Array) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)

	var b strings.Builder
	fmt.Fprintf(&b, "  gsize len = %sget_length (v);\n", funcBase)
	fmt.Fprintf(&b, "  if (annotate_types && len == 0)\n    {\n      g_string_append (sink, \"@%s []\");\n      return;\n    }\n", a.Typestring())
	fmt.Fprint(&b, "  g_string_append_c (sink, '[');\n  for (gsize i = 0; i < len; i++)\n    {\n      if (i > 0)\n        g_string_append (sink, \", \");\n")
	g.formatValue(&b, a.Elem, funcBase+"get_at (v, i)", "(annotate_types && i == 0)")
	fmt.Fprint(&b, "    }\n  g_string_append_c (sink, ']');\n")

	fmt.Fprintf(&g.w, "static inline void\n%sformat (%s v, GString *sink, gboolean annotate_types)\n{\n%s}\n\n", funcBase, cname, b.String())
	g.registerErased(cname, funcBase, a.Typestring())
	g.execPrint(cname, funcBase)
}

func (g *generator) emitDictFormat(name string, d *types.Dict) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)

	var b strings.Builder
	fmt.Fprintf(&b, "  gsize len = %sget_length (v);\n", funcBase)
	fmt.Fprintf(&b, "  if (annotate_types && len == 0)\n    {\n      g_string_append (sink, \"@%s {}\");\n      return;\n    }\n", d.Typestring())
	fmt.Fprint(&b, "  g_string_append_c (sink, '{');\n  for (gsize i = 0; i < len; i++)\n    {\n      if (i > 0)\n        g_string_append (sink, \", \");\n")
	fmt.Fprintf(&b, "      VariantChunk e = %sget_at (v, i);\n", funcBase)
	g.formatValue(&b, d.Key, funcBase+"entry_get_key (e)", "(annotate_types && i == 0)")
	fmt.Fprint(&b, "      g_string_append (sink, \": \");\n")
	g.formatValue(&b, d.Value, funcBase+"entry_get_value (e)", "FALSE")
	fmt.Fprint(&b, "    }\n  g_string_append_c (sink, '}');\n")

	fmt.Fprintf(&g.w, "static inline void\n%sformat (%s v, GString *sink, gboolean annotate_types)\n{\n%s}\n\n", funcBase, cname, b.String())
	g.registerErased(cname, funcBase, d.Typestring())
	g.execPrint(cname, funcBase)
}

func (g *generator) emitMaybeFormat(name string, m *types.Maybe) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)

	var b strings.Builder
	fmt.Fprintf(&b, "  if (!%shas_value (v))\n    {\n      g_string_append (sink, \"nothing\");\n      return;\n    }\n", funcBase)
	if _, nested := m.Elem.(*types.Maybe); nested {
		fmt.Fprint(&b, "  g_string_append (sink, \"just \");\n")
	}
	g.formatValue(&b, m.Elem, funcBase+"get_value (v)", "annotate_types")

	fmt.Fprintf(&g.w, "static inline void\n%sformat (%s v, GString *sink, gboolean annotate_types)\n{\n%s}\n\n", funcBase, cname, b.String())
	g.registerErased(cname, funcBase, m.Typestring())
	g.execPrint(cname, funcBase)
}

// emitStructFormat implements the tuple formatter: fields are separated
// by ", ", a single-field tuple gets a trailing comma before its closing
// paren (disambiguating it from a parenthesized scalar), and maximal
// runs of printf-coalescable fields are merged into one
// g_string_append_printf call rather than one per field. Only the very
// first field of the struct (if any) ever inherits the outer
// annotate_types flag; every other field is never annotated, mirroring
// the array/dict rule that only index 0 of a container inherits it.
func (g *generator) emitStructFormat(name string, s *types.Struct) {
	cname := g.n.TypeName(name)
	funcBase := g.n.FuncName(name)

	var b strings.Builder
	fmt.Fprint(&b, "  g_string_append_c (sink, '(');\n")

	i := 0
	for i < len(s.Fields) {
		if i > 0 {
			fmt.Fprint(&b, "  g_string_append (sink, \", \");\n")
		}
		if isPrintfable(s.Fields[i].Spec) {
			j := i
			for j < len(s.Fields) && isPrintfable(s.Fields[j].Spec) {
				j++
			}
			g.emitPrintfRun(&b, funcBase, s.Fields[i:j], i == 0)
			i = j
			continue
		}
		annotateExpr := "FALSE"
		if i == 0 {
			annotateExpr = "annotate_types"
		}
		g.formatValue(&b, s.Fields[i].Spec, fmt.Sprintf("%sget_%s (v)", funcBase, s.Fields[i].Name), annotateExpr)
		i++
	}

	if len(s.Fields) == 1 {
		fmt.Fprint(&b, "  g_string_append_c (sink, ',');\n")
	}
	fmt.Fprint(&b, "  g_string_append_c (sink, ')');\n")

	fmt.Fprintf(&g.w, "static inline void\n%sformat (%s v, GString *sink, gboolean annotate_types)\n{\n%s}\n\n", funcBase, cname, b.String())
	g.registerErased(cname, funcBase, s.Typestring())
	g.execPrint(cname, funcBase)
}

func (g *generator) emitPrintfRun(b *strings.Builder, funcBase string, run []*types.Field, includesFirstField bool) {
	if includesFirstField {
		basic := run[0].Spec.(*types.Basic)
		if prefix := basic.AnnotationPrefix(); prefix != "" {
			fmt.Fprintf(b, "  if (annotate_types)\n    g_string_append (sink, %q);\n", prefix)
		}
	}

	var formats, args []string
	for _, f := range run {
		basic := f.Spec.(*types.Basic)
		pf, _ := basic.PrintfFormat()
		formats = append(formats, pf)
		args = append(args, fmt.Sprintf("(%s) %sget_%s (v)", castTypeForPrintf(basic.Kind), funcBase, f.Name))
	}
	fmt.Fprintf(b, "  g_string_append_printf (sink, \"%s\", %s);\n", strings.Join(formats, ", "), strings.Join(args, ", "))
}

// emitVariantFormat emits the Variant view's own T_format/T_print. The
// SHALLOW_VARIANT_FORMAT switch (defined in the header, defaulting to 1)
// governs only whether a composite child's contents are fully rendered
// via gv_format_dynamic's type-table lookup or collapsed to its bare
// signature; a scalar child is always rendered.
func (g *generator) emitVariantFormat(cname, funcBase string) {
	fmt.Fprintf(&g.w, `static inline void
%sformat (%s v, GString *sink, gboolean annotate_types)
{
  const char *sig = %sget_type_string (v);
  g_string_append_c (sink, '<');
  if (annotate_types)
    {
      g_string_append_c (sink, '@');
      g_string_append (sink, sig);
      g_string_append_c (sink, ' ');
    }
  gv_format_dynamic (%sget_child_base (v), %sget_child_size (v), sig, sink, FALSE, SHALLOW_VARIANT_FORMAT);
  g_string_append_c (sink, '>');
}

`, funcBase, cname, funcBase, funcBase, funcBase)
	g.execPrint(cname, funcBase)
}

// emitRuntimeSupport emits the one piece of formatting machinery that
// cannot be written until every named type has been emitted: the type
// table gv_format_dynamic searches when a variant's contents are a
// composite signature, and gv_format_dynamic's own body (its prototype
// was already emitted in the header so that the early-emitted Variant
// formatter can call it).
func (g *generator) emitRuntimeSupport() {
	fmt.Fprint(&g.w, "static const GvTypeInfo gv_type_table[] = {\n")
	for _, e := range g.typeTable {
		fmt.Fprintf(&g.w, "  { %q, %sformat_erased },\n", e.Typestring, e.FuncBase)
	}
	fmt.Fprint(&g.w, "};\n\n")

	fmt.Fprint(&g.w, `static GvFormatFn
gv_lookup_type_info (const char *sig)
{
  for (gsize i = 0; i < G_N_ELEMENTS (gv_type_table); i++)
    if (strcmp (gv_type_table[i].typestring, sig) == 0)
      return gv_type_table[i].format;
  return NULL;
}

`)

	variantCName := g.n.TypeName("variant")
	variantFuncBase := g.n.FuncName("variant")

	fmt.Fprintf(&g.w, `static void
gv_format_dynamic (gconstpointer base, gsize size, const char *sig, GString *sink, gboolean annotate, gboolean shallow)
{
  if (sig[0] == 'v' && sig[1] == '\0')
    {
      %s child;
      child.base = base;
      child.size = size;
      %sformat (child, sink, annotate);
      return;
    }
  if (sig[1] == '\0')
    {
      gv_format_basic_by_char (sig[0], base, size, sink, annotate);
      return;
    }
  if (shallow)
    {
      g_string_append (sink, sig);
      return;
    }
  GvFormatFn fn = gv_lookup_type_info (sig);
  if (fn != NULL)
    {
      fn (base, size, sink, annotate);
      return;
    }
  g_string_append (sink, "<unknown ");
  g_string_append (sink, sig);
  g_string_append_c (sink, '>');
}
`, variantCName, variantFuncBase)
}
