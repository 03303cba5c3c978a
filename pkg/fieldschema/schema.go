// Package fieldschema models the declarative document schema consumed by the
// validation layer, the form renderer and the GraphQL schema builder.
//
// A Schema maps field names to FieldSchema records. Schemas for single fields
// are built independently and combined by the caller, so every record is a
// plain value which can be merged with other partial records using Merge.
package fieldschema

import (
	"sort"
	"strings"
)

// ArrayItemSuffix is appended to a field name to address every element of an array field.
const ArrayItemSuffix = ".$"

// NoIndex is passed to a Previewer when the value is not an array element.
const NoIndex = -1

// Document is a stored document as seen by resolvers and form components.
type Document map[string]interface{}

// RenderContext is handed to form callbacks while a form is rendered.
type RenderContext struct {
	Document Document
}

type Previewer interface {
	// Preview returns what the form should display for value.
	// index is the position of value inside an array field or NoIndex.
	Preview(value interface{}, index int, rctx RenderContext) interface{}
}

type FormOptions struct {
	// PreviewFromValue lazily builds the previewer used by upload controls.
	PreviewFromValue func() Previewer       `json:"-" yaml:"-"`
	Props            map[string]interface{} `json:"props,omitempty" yaml:"props,omitempty"`
}

// ResolveAs tells the GraphQL schema builder to expose a resolved field next to the stored one.
type ResolveAs struct {
	FieldName        string `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	Type             string `json:"type,omitempty" yaml:"type,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	AddOriginalField bool   `json:"addOriginalField,omitempty" yaml:"addOriginalField,omitempty"`
}

type FieldSchema struct {
	Type        *Type                  `json:"type,omitempty" yaml:"type,omitempty"`
	Label       string                 `json:"label,omitempty" yaml:"label,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Optional    *bool                  `json:"optional,omitempty" yaml:"optional,omitempty"`
	Control     string                 `json:"control,omitempty" yaml:"control,omitempty"`
	Form        *FormOptions           `json:"form,omitempty" yaml:"form,omitempty"`
	ResolveAs   *ResolveAs             `json:"resolveAs,omitempty" yaml:"resolveAs,omitempty"`
	CanRead     []string               `json:"canRead,omitempty" yaml:"canRead,omitempty"`
	CanCreate   []string               `json:"canCreate,omitempty" yaml:"canCreate,omitempty"`
	CanUpdate   []string               `json:"canUpdate,omitempty" yaml:"canUpdate,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Schema maps field names, including array item keys, to their field schema.
type Schema map[string]*FieldSchema

func ArrayItemKey(fieldName string) string {
	return fieldName + ArrayItemSuffix
}

func IsArrayItemKey(key string) bool {
	return strings.HasSuffix(key, ArrayItemSuffix)
}

// Keys returns the schema keys in lexical order so that
// array item keys directly follow their array field.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of f which shares no mutable state with f.
// Types and form callbacks are shared since they are never mutated.
func (f *FieldSchema) Clone() *FieldSchema {
	if f == nil {
		return nil
	}
	out := *f
	if f.Optional != nil {
		optional := *f.Optional
		out.Optional = &optional
	}
	if f.Form != nil {
		form := *f.Form
		form.Props = cloneMap(f.Form.Props)
		out.Form = &form
	}
	if f.ResolveAs != nil {
		resolveAs := *f.ResolveAs
		out.ResolveAs = &resolveAs
	}
	out.CanRead = cloneStrings(f.CanRead)
	out.CanCreate = cloneStrings(f.CanCreate)
	out.CanUpdate = cloneStrings(f.CanUpdate)
	out.Extra = cloneMap(f.Extra)
	return &out
}

// Bool returns a pointer to b, for use with tri-state fields such as Optional.
func Bool(b bool) *bool {
	return &b
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for key, value := range in {
		if nested, ok := value.(map[string]interface{}); ok {
			out[key] = cloneMap(nested)
			continue
		}
		out[key] = value
	}
	return out
}
