// Package filefield generates the schema of document fields storing uploaded files.
//
// A file field stores one file id, or a list of them when multiple, and
// exposes the resolved file objects through GraphQL under a resolver name:
//
//	schema := filefield.GenerateFieldSchemaBase("avatarId", filefield.Options{
//		FieldSchema:  &fieldschema.FieldSchema{Label: "Avatar"},
//		ResolverName: "avatar",
//	})
//
// The returned schema is merged into the document schema by the caller.
package filefield

import (
	"sync"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
	"github.com/vulcan-files/graphql-files/pkg/fileid"
	"github.com/vulcan-files/graphql-files/pkg/filesdl"
)

// UploadControl is the form control rendering file fields.
const UploadControl = "Upload"

type Options struct {
	// FieldSchema is merged into the generated field schema.
	// It may override form behaviour but not the GraphQL resolution.
	FieldSchema *fieldschema.FieldSchema
	// FieldType is how the file reference is stored.
	// Defaults to FieldSchema.Type, then to fieldschema.String.
	FieldType *fieldschema.Type
	// ResolverName is the GraphQL field exposing the resolved file(s).
	// Defaults to FieldSchema.ResolveAs.FieldName.
	ResolverName string
	Multiple     bool
	// ResolveID defaults to fileid.Default.
	ResolveID fileid.ResolveFunc
}

func (o Options) fieldSchema() *fieldschema.FieldSchema {
	if o.FieldSchema == nil {
		return &fieldschema.FieldSchema{}
	}
	return o.FieldSchema
}

func (o Options) fieldType() *fieldschema.Type {
	if o.FieldType != nil {
		return o.FieldType
	}
	if o.FieldSchema != nil && o.FieldSchema.Type != nil {
		return o.FieldSchema.Type
	}
	return fieldschema.String
}

func (o Options) resolverName() string {
	if o.ResolverName != "" {
		return o.ResolverName
	}
	if o.FieldSchema != nil && o.FieldSchema.ResolveAs != nil {
		return o.FieldSchema.ResolveAs.FieldName
	}
	return ""
}

func (o Options) resolveID() fileid.ResolveFunc {
	if o.ResolveID != nil {
		return o.ResolveID
	}
	return fileid.Default
}

// GenerateFieldSchemaBase returns the schema entries of the file field fieldName.
// The field entry is keyed by fieldName. Multiple fields get an extra entry keyed by
// fieldschema.ArrayItemKey(fieldName) describing a single element.
//
// Stored values validate either as a blackbox object or as the field type, so the
// validation layer never coerces an already resolved file object into an id.
func GenerateFieldSchemaBase(fieldName string, options Options) fieldschema.Schema {
	resolverName := options.resolverName()
	fileOrType := fieldschema.OneOf(fieldschema.Blackbox(), options.fieldType())

	resolveID := options.resolveID()

	formInputFieldSchema := &fieldschema.FieldSchema{
		Control: UploadControl,
		Form: &fieldschema.FormOptions{
			PreviewFromValue: sync.OnceValue(func() fieldschema.Previewer {
				return &preview{
					resolverName: resolverName,
					resolveID:    resolveID,
				}
			}),
		},
	}

	storedType := fileOrType
	if options.Multiple {
		storedType = fieldschema.Array
	}
	graphqlFieldSchema := &fieldschema.FieldSchema{
		Type: storedType,
		ResolveAs: &fieldschema.ResolveAs{
			FieldName:        resolverName,
			Type:             filesdl.FileType(options.Multiple).String(),
			AddOriginalField: true,
		},
	}

	schema := fieldschema.Schema{
		fieldName: fieldschema.Merge(formInputFieldSchema, options.fieldSchema(), graphqlFieldSchema),
	}
	if options.Multiple {
		schema[fieldschema.ArrayItemKey(fieldName)] = &fieldschema.FieldSchema{Type: fileOrType}
	}
	return schema
}
