package filefield

import (
	"reflect"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
	"github.com/vulcan-files/graphql-files/pkg/fileid"
)

// preview shows the resolved file of a stored id while the form is rendered.
type preview struct {
	resolverName string
	resolveID    fileid.ResolveFunc
}

// Preview returns document[resolverName], or its element at index for multiple fields,
// when value is a raw id. Values which are not ids and negative indices other than
// fieldschema.NoIndex yield nil.
func (p *preview) Preview(value interface{}, index int, rctx fieldschema.RenderContext) interface{} {
	if _, ok := fileid.String(p.resolveID, value); !ok {
		return nil
	}
	resolved, ok := rctx.Document[p.resolverName]
	if !ok {
		return nil
	}
	if index == fieldschema.NoIndex {
		return resolved
	}
	if index < 0 {
		return nil
	}
	return elementAt(resolved, index)
}

func elementAt(list interface{}, index int) interface{} {
	switch l := list.(type) {
	case []interface{}:
		if index < len(l) {
			return l[index]
		}
		return nil
	case nil:
		return nil
	}

	value := reflect.ValueOf(list)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil
	}
	if index >= value.Len() {
		return nil
	}
	return value.Index(index).Interface()
}
