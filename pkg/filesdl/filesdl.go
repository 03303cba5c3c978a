// Package filesdl renders the GraphQL schema surface of file fields.
package filesdl

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
)

const FileTypeName = "File"

const FileTypeDefinition = `type File {
	_id: String!
	name: String
	type: String
	size: Float
	url: String
}
`

var (
	ErrUnsupportedType = errors.New("filesdl: unsupported field type")
	ErrInvalidTypeRef  = errors.New("filesdl: invalid type reference")
)

// FileType returns the GraphQL type of a resolved file field.
func FileType(multiple bool) *ast.Type {
	named := ast.NamedType(FileTypeName, nil)
	if multiple {
		return ast.ListType(named, nil)
	}
	return named
}

// ExtendType renders an "extend type" definition adding the resolved fields of schema to typeName.
// Stored fields are added too when their resolver asks for the original field.
// An empty string is returned when schema has no resolved fields.
func ExtendType(typeName string, schema fieldschema.Schema) (string, error) {
	definition := &ast.Definition{
		Kind: ast.Object,
		Name: typeName,
	}

	for _, key := range schema.Keys() {
		if fieldschema.IsArrayItemKey(key) {
			continue
		}
		field := schema[key]
		if field == nil || field.ResolveAs == nil || field.ResolveAs.FieldName == "" {
			continue
		}

		if field.ResolveAs.AddOriginalField {
			original, err := storedType(schema, key, field.Type)
			if err != nil {
				return "", err
			}
			definition.Fields = append(definition.Fields, &ast.FieldDefinition{
				Name:        key,
				Description: field.Description,
				Type:        original,
			})
		}

		resolved, err := ParseTypeRef(field.ResolveAs.Type)
		if err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		definition.Fields = append(definition.Fields, &ast.FieldDefinition{
			Name:        field.ResolveAs.FieldName,
			Description: field.ResolveAs.Description,
			Type:        resolved,
		})
	}

	if len(definition.Fields) == 0 {
		return "", nil
	}

	buf := &bytes.Buffer{}
	formatter.NewFormatter(buf).FormatSchemaDocument(&ast.SchemaDocument{
		Extensions: ast.DefinitionList{definition},
	})
	return buf.String(), nil
}

// ParseTypeRef parses a GraphQL type reference such as "[File]" or "String!".
func ParseTypeRef(ref string) (*ast.Type, error) {
	if ref == "" {
		return nil, ErrInvalidTypeRef
	}
	document, err := parser.ParseSchema(&ast.Source{
		Name:  "typeref",
		Input: "type TypeRef { ref: " + ref + " }",
	})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidTypeRef, ref, err.Error())
	}
	if len(document.Definitions) != 1 || len(document.Definitions[0].Fields) != 1 {
		return nil, fmt.Errorf("%w %q", ErrInvalidTypeRef, ref)
	}
	return document.Definitions[0].Fields[0].Type, nil
}

// Validate loads the File type together with sources and reports schema errors.
func Validate(sources ...string) error {
	inputs := make([]*ast.Source, 0, len(sources)+1)
	inputs = append(inputs, &ast.Source{Name: "file.graphql", Input: FileTypeDefinition})
	for i := range sources {
		inputs = append(inputs, &ast.Source{
			Name:  fmt.Sprintf("source_%d.graphql", i),
			Input: sources[i],
		})
	}
	_, err := gqlparser.LoadSchema(inputs...)
	if err != nil {
		return fmt.Errorf("filesdl: %s", err.Error())
	}
	return nil
}

func storedType(schema fieldschema.Schema, key string, fieldType *fieldschema.Type) (*ast.Type, error) {
	if fieldType == nil {
		return nil, fmt.Errorf("%w: %s has no type", ErrUnsupportedType, key)
	}

	switch fieldType.Kind {
	case fieldschema.KindString, fieldschema.KindDate:
		return ast.NamedType("String", nil), nil
	case fieldschema.KindNumber:
		return ast.NamedType("Float", nil), nil
	case fieldschema.KindInteger:
		return ast.NamedType("Int", nil), nil
	case fieldschema.KindBoolean:
		return ast.NamedType("Boolean", nil), nil
	case fieldschema.KindOneOf:
		for _, member := range fieldType.OneOf {
			if member.IsBlackbox() {
				continue
			}
			return storedType(schema, key, member)
		}
	case fieldschema.KindArray:
		itemKey := fieldschema.ArrayItemKey(key)
		item, ok := schema[itemKey]
		if !ok || item == nil {
			return nil, fmt.Errorf("%w: %s has no item schema", ErrUnsupportedType, key)
		}
		elem, err := storedType(schema, itemKey, item.Type)
		if err != nil {
			return nil, err
		}
		return ast.ListType(elem, nil), nil
	}

	return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, key, fieldType)
}
