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

import "text/template"

// mustTemplates parses the fixed, kind-independent emission skeletons
// once per Generate call: the file header and the gvariant interop trio
// every composite kind shares. Per-kind accessor and formatter bodies
// vary too much field-to-field to express cleanly in template syntax, so
// they are built directly with fmt.Fprintf into the same sink (see
// accessors.go, formatters.go) — mirroring how the schema specification's
// own design notes call for "an explicit string buffer threaded through
// the emitter" rather than template control-flow for the offset algebra.
func mustTemplates() *template.Template {
	t := template.New("codegen")
	template.Must(t.New("header").Parse(headerTmpl))
	template.Must(t.New("commonBase").Parse(commonBaseTmpl))
	template.Must(t.New("commonFromVariant").Parse(commonFromVariantTmpl))
	return t
}

const headerTmpl = `/* Generated by gvschema-gen. DO NOT EDIT. */
/* source: {{.Filename}} */
{{if .Digest}}/* schema-digest: {{.Digest}} */
{{end -}}
{{if .GenerationID}}/* generation-id: {{.GenerationID}} */
{{end -}}
#include <glib.h>
#include <string.h>

#ifndef SHALLOW_VARIANT_FORMAT
#define SHALLOW_VARIANT_FORMAT 1
#endif

typedef struct {
  gconstpointer base;
  gsize size;
} VariantChunk;

/* Slot-width law: the byte width of every framing offset stored at the
   tail of a container of the given total size. */
static inline gsize
gv_offset_width (gsize container_size)
{
  if (container_size <= 0xFF)
    return 1;
  if (container_size <= 0xFFFF)
    return 2;
  if (container_size <= 0xFFFFFFFFU)
    return 4;
  return 8;
}

/* Reads the little-endian framing offset stored slot_from_end slots
   before the end of a container of container_size bytes, each slot
   being width bytes wide. */
static inline gsize
gv_read_offset (gconstpointer base, gsize container_size, gsize width, gsize slot_from_end)
{
  const guint8 *p = ((const guint8 *) base) + container_size - width * (slot_from_end + 1);
  gsize value = 0;
  memcpy (&value, p, width);
  return value;
}

static inline gsize
gv_align_up (gsize value, gsize alignment)
{
  return (value + alignment - 1) & ~(alignment - 1);
}

/* Ensures a formatted double round-trips through the text form: GVariant
   text syntax distinguishes doubles from integers by requiring a '.' or
   an exponent somewhere in the literal. */
static inline void
gv_format_double (GString *sink, double value)
{
  gsize before = sink->len;
  g_string_append_printf (sink, "%.17g", value);
  if (strpbrk (sink->str + before, ".eEnN") == NULL)
    g_string_append (sink, ".0");
}

/* Quotes and escapes a NUL-terminated string the way GVariant text
   syntax does: prefer single quotes, fall back to double quotes when the
   string itself contains a single quote (and no double quote), and
   backslash-escape control characters and the chosen quote character. */
static inline void
gv_escape_string (GString *sink, const char *s)
{
  char quote = (strchr (s, '\'') != NULL && strchr (s, '"') == NULL) ? '"' : '\'';
  g_string_append_c (sink, quote);
  for (const unsigned char *p = (const unsigned char *) s; *p != 0; p++)
    {
      switch (*p)
        {
        case '\a': g_string_append (sink, "\\a"); break;
        case '\b': g_string_append (sink, "\\b"); break;
        case '\f': g_string_append (sink, "\\f"); break;
        case '\n': g_string_append (sink, "\\n"); break;
        case '\r': g_string_append (sink, "\\r"); break;
        case '\t': g_string_append (sink, "\\t"); break;
        case '\v': g_string_append (sink, "\\v"); break;
        default:
          if (*p == (unsigned char) quote || *p == '\\')
            g_string_append_c (sink, '\\');
          if (*p < 0x20 || *p == 0x7f)
            g_string_append_printf (sink, "\\u%04x", (unsigned int) *p);
          else
            g_string_append_c (sink, (char) *p);
        }
    }
  g_string_append_c (sink, quote);
}

/* Formats a single basic value identified by its typestring character
   rather than by a generated C type, for use where only a raw
   (base, size) pair and a signature are available — namely, while
   formatting the contents of a variant. */
static void
gv_format_basic_by_char (char c, gconstpointer base, gsize size, GString *sink, gboolean annotate)
{
  (void) size;
  switch (c)
    {
    case 'b':
      {
        guint8 value;
        memcpy (&value, base, sizeof value);
        g_string_append (sink, value ? "true" : "false");
        break;
      }
    case 'y':
      {
        guint8 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "byte ");
        g_string_append_printf (sink, "%u", (unsigned int) value);
        break;
      }
    case 'n':
      {
        gint16 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "int16 ");
        g_string_append_printf (sink, "%d", (int) value);
        break;
      }
    case 'q':
      {
        guint16 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "uint16 ");
        g_string_append_printf (sink, "%u", (unsigned int) value);
        break;
      }
    case 'i':
      {
        gint32 value;
        memcpy (&value, base, sizeof value);
        g_string_append_printf (sink, "%d", value);
        break;
      }
    case 'u':
      {
        guint32 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "uint32 ");
        g_string_append_printf (sink, "%u", value);
        break;
      }
    case 'x':
      {
        gint64 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "int64 ");
        g_string_append_printf (sink, "%" G_GINT64_FORMAT, value);
        break;
      }
    case 't':
      {
        guint64 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "uint64 ");
        g_string_append_printf (sink, "%" G_GUINT64_FORMAT, value);
        break;
      }
    case 'h':
      {
        guint32 value;
        memcpy (&value, base, sizeof value);
        if (annotate) g_string_append (sink, "handle ");
        g_string_append_printf (sink, "%u", value);
        break;
      }
    case 'd':
      {
        double value;
        memcpy (&value, base, sizeof value);
        gv_format_double (sink, value);
        break;
      }
    case 's':
      gv_escape_string (sink, (const char *) base);
      break;
    case 'o':
      if (annotate) g_string_append (sink, "objectpath ");
      gv_escape_string (sink, (const char *) base);
      break;
    case 'g':
      if (annotate) g_string_append (sink, "signature ");
      gv_escape_string (sink, (const char *) base);
      break;
    default:
      g_string_append (sink, "<?>");
      break;
    }
}

typedef void (*GvFormatFn) (gconstpointer base, gsize size, GString *sink, gboolean annotate);

typedef struct {
  const char *typestring;
  GvFormatFn format;
} GvTypeInfo;

/* Formats a value known only by its runtime signature and raw bytes —
   the contents of a variant. Scalars and nested variants are handled
   directly; any other composite signature is resolved against the set
   of types this schema actually declares (gv_type_table, emitted at the
   end of this file), since that is the full universe of concrete
   layouts this generator knows how to interpret. shallow
   (SHALLOW_VARIANT_FORMAT) selects between printing a composite
   child's signature only or rendering its contents through that
   table; scalars and nested variants are rendered either way. */
static void gv_format_dynamic (gconstpointer base, gsize size, const char *sig, GString *sink, gboolean annotate, gboolean shallow);

`

// commonBaseTmpl emits the view typedef, typestring literal, and the
// T_from_gvariant / T_dup_to_gvariant pair every named kind has,
// including Variant itself.
const commonBaseTmpl = `typedef struct {
  gconstpointer base;
  gsize size;
} {{.CName}};

static const char {{.FuncBase}}typestring[] = "{{.Typestring}}";

static inline {{.CName}}
{{.FuncBase}}from_gvariant (GVariant *v)
{
  g_assert (g_variant_is_of_type (v, G_VARIANT_TYPE ({{.FuncBase}}typestring)));
  {{.CName}} result;
  result.base = g_variant_get_data (v);
  result.size = g_variant_get_size (v);
  return result;
}

static inline GVariant *
{{.FuncBase}}dup_to_gvariant ({{.CName}} v)
{
  return g_variant_ref_sink (
      g_variant_new_from_data (G_VARIANT_TYPE ({{.FuncBase}}typestring),
                                v.base, v.size, TRUE, NULL, NULL));
}

`

// commonFromVariantTmpl emits T_from_variant, which unwraps a Variant
// view rather than a raw GVariant*. It is only emitted for non-Variant
// kinds — unwrapping a variant into itself is the identity and has no
// accessor.
const commonFromVariantTmpl = `static inline {{.CName}}
{{.FuncBase}}from_variant ({{.VariantCName}} v)
{
  g_assert (strcmp ({{.VariantFuncBase}}get_type_string (v), {{.FuncBase}}typestring) == 0);
  {{.CName}} result;
  result.base = {{.VariantFuncBase}}get_child_base (v);
  result.size = {{.VariantFuncBase}}get_child_size (v);
  return result;
}

`
