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

package types

import (
	"github.com/flatpak/gvschema-gen/internal/schema/ast"
	"github.com/flatpak/gvschema-gen/internal/schema/errors"
	"github.com/flatpak/gvschema-gen/internal/schema/token"
)

// Registry holds the named-type table for a single generator invocation.
// Unlike the original compiler's module-level named_types dict, a
// Registry is created fresh per Build call, so repeated in-process
// invocations (as happen in tests) never leak state between runs.
type Registry struct {
	byName map[string]Type
	// order preserves declaration order, for the top-level emission walk.
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Type{}}
}

// Lookup resolves a named reference. ok is false when name was never
// declared.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Declared returns the named types in declaration order.
func (r *Registry) Declared() []Type {
	out := make([]Type, len(r.order))
	for i, name := range r.order {
		out[i] = r.byName[name]
	}
	return out
}

func (r *Registry) add(pos token.Position, name string, t Type) error {
	if _, exists := r.byName[name]; exists {
		return &errors.SchemaError{Pos: pos, Msg: "duplicate type definition: " + name}
	}
	t.SetTypeName(name, true)
	r.byName[name] = t
	r.order = append(r.order, name)
	return nil
}

// Build resolves every top-level declaration in f against a fresh
// Registry, in order, and returns the registry. A named reference to a
// type not yet declared earlier in the file is a schema error (the
// schema language requires dependency order, per spec).
func Build(f *ast.File) (*Registry, error) {
	r := NewRegistry()
	var errs errors.List

	for _, decl := range f.Decls {
		t, err := r.buildSpec(decl.Spec)
		if err != nil {
			if list, ok := err.(errors.List); ok {
				errs = append(errs, list...)
			} else if se, ok := err.(*errors.SchemaError); ok {
				errs = append(errs, se)
			}
			continue
		}
		if err := r.add(decl.Pos, decl.Name, t); err != nil {
			if se, ok := err.(*errors.SchemaError); ok {
				errs = append(errs, se)
			}
		}
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}
	return r, nil
}

func (r *Registry) buildSpec(spec ast.TypeSpec) (Type, error) {
	switch n := spec.(type) {
	case *ast.BasicSpec:
		if !IsBasicKind(n.Kind) {
			return nil, &errors.SchemaError{Pos: n.Position, Msg: "unknown basic type: " + n.Kind}
		}
		return NewBasic(BasicKind(n.Kind)), nil

	case *ast.VariantSpec:
		return NewVariant(), nil

	case *ast.ArraySpec:
		elem, err := r.buildSpec(n.Elem)
		if err != nil {
			return nil, err
		}
		return NewArray(elem), nil

	case *ast.DictSpec:
		key, err := r.buildSpec(n.Key)
		if err != nil {
			return nil, err
		}
		basicKey, ok := key.(*Basic)
		if !ok {
			return nil, &errors.SchemaError{Pos: n.Position, Msg: "dictionary key must be a basic type"}
		}
		value, err := r.buildSpec(n.Value)
		if err != nil {
			return nil, err
		}
		return NewDict(basicKey, value), nil

	case *ast.MaybeSpec:
		elem, err := r.buildSpec(n.Elem)
		if err != nil {
			return nil, err
		}
		return NewMaybe(elem), nil

	case *ast.StructSpec:
		fields := make([]*Field, 0, len(n.Fields))
		for _, fd := range n.Fields {
			ft, err := r.buildSpec(fd.Spec)
			if err != nil {
				return nil, err
			}
			fields = append(fields, &Field{Name: fd.Name, Attributes: fd.Attributes, Spec: ft})
		}
		return NewStruct(fields), nil

	case *ast.NamedSpec:
		t, ok := r.Lookup(n.Name)
		if !ok {
			return nil, &errors.SchemaError{Pos: n.Position, Msg: "unknown named type: " + n.Name}
		}
		return t, nil

	default:
		errors.Fail("unreachable type spec kind %T", spec)
		return nil, nil
	}
}
