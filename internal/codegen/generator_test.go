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
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flatpak/gvschema-gen/internal/schema/parser"
	"github.com/flatpak/gvschema-gen/internal/types"
)

func generate(t *testing.T, src string, opts Options) string {
	t.Helper()
	f, err := parser.ParseFile("test.schema", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	reg, err := types.Build(f)
	qt.Assert(t, qt.IsNil(err))
	out, err := Generate(reg, Header{Filename: "test.schema"}, opts)
	qt.Assert(t, qt.IsNil(err))
	return out
}

func TestGenerateStructEmitsFieldGettersAndFramingCount(t *testing.T) {
	out := generate(t, `type Pair { a: int32; b: byte; };`, Options{})

	qt.Assert(t, qt.IsTrue(strings.Contains(out, "/* Generated by gvschema-gen. DO NOT EDIT. */")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "source: test.schema")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "} Pair;")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `static const char pair_typestring[] = "(iy)";`)))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "static const gsize pair_framing_offset_count = 0;")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "pair_get_a (Pair v)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "pair_get_b (Pair v)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "pair_format (Pair v, GString *sink, gboolean annotate_types)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "pair_print (Pair v, gboolean annotate_types)")))
}

func TestGenerateStructWithTrailingVariableFieldCoalescesPrintfRun(t *testing.T) {
	out := generate(t, `type Rec { a: int32; b: uint32; name: string; };`, Options{})

	// a and b are both printf-coalescable and adjacent: one call, not two.
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `g_string_append_printf (sink, "%d, %u", (int) rec_get_a (v), (unsigned int) rec_get_b (v));`)))
	// The trailing variable field needs no stored framing offset (it's last).
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "static const gsize rec_framing_offset_count = 0;")))
}

func TestGenerateArrayOfFixedBasicUsesDivisionForLength(t *testing.T) {
	out := generate(t, `type Names []int32;`, Options{})
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "names_get_length (Names v)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "return v.size / 4;")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `g_string_append (sink, "@ai []");`)))
}

func TestGenerateDictEmitsLookupAndEntryAccessors(t *testing.T) {
	out := generate(t, `type Settings [string]int32;`, Options{})
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "settings_entry_get_key (VariantChunk e)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "settings_entry_get_value (VariantChunk e)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "strcmp (k, key) == 0")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "settings_lookup (Settings v, const char * key, gint32 *out)")))
}

func TestGenerateMaybeOfBasicEmitsPresenceCheckAndFormatter(t *testing.T) {
	out := generate(t, `type Flag ?int32;`, Options{})
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "flag_has_value (Flag v)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `g_string_append (sink, "nothing");`)))
	// Maybe-of-Basic must reach the formatter call, not just the accessor.
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "flag_format (Flag v, GString *sink, gboolean annotate_types)")))
}

func TestGenerateVariantSupportEmittedOnceRegardlessOfUsage(t *testing.T) {
	out := generate(t, `type Pair { a: int32; b: byte; };`, Options{})
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "variant_find_separator (variant v)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "variant_format (variant v, GString *sink, gboolean annotate_types)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "gv_format_dynamic")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "static const GvTypeInfo gv_type_table[] = {")))
}

func TestGeneratePrefixAppliedToTypeAndFuncNames(t *testing.T) {
	out := generate(t, `type Pair { a: int32; b: byte; };`, Options{Prefix: "gv"})
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "} GvPair;")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "gv_pair_get_a (GvPair v)")))
}

func TestGenerateNamedStructFieldGetsPropagatedTypeName(t *testing.T) {
	// inner's type (Pair) already carries its own top-level name, so
	// propagation from Wrapper must not override it; opts is an anonymous
	// dict with no prior name, so it picks up the propagated
	// "Wrapper__opts" name.
	out := generate(t, `
type Pair { a: int32; b: byte; };
type Wrapper { inner: Pair; opts: [string]int32; };
`, Options{})
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "wrapper_get_inner (Wrapper v)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "} Wrapper__opts;")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "wrapper__opts_get_length (Wrapper__opts v)")))
}
