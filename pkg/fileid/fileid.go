// Package fileid extracts file identifiers from stored field values.
package fileid

import "reflect"

// ResolveFunc maps a stored field value to the file identifier it represents.
// A ResolveFunc must not panic. When value carries no identifier it returns a
// non-string value, usually nil.
type ResolveFunc func(value interface{}) interface{}

// Identifier is implemented by resolved file objects.
type Identifier interface {
	FileID() string
}

// Default treats the stored value as the identifier itself.
// Raw ids are strings while already resolved file objects are not.
func Default(value interface{}) interface{} {
	return value
}

// Key extracts the identifier stored under key for maps keyed by strings,
// and the FileID of non-nil values implementing Identifier.
func Key(key string) ResolveFunc {
	return func(value interface{}) interface{} {
		switch v := value.(type) {
		case nil:
			return nil
		case map[string]interface{}:
			return v[key]
		case Identifier:
			if isNilPointer(v) {
				return nil
			}
			return v.FileID()
		}
		return mapIndex(value, key)
	}
}

func isNilPointer(value interface{}) bool {
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// mapIndex looks key up in named map types such as fieldschema.Document.
func mapIndex(value interface{}, key string) interface{} {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil
	}
	element := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
	if !element.IsValid() {
		return nil
	}
	return element.Interface()
}

// String applies fn to value and reports whether the result is a string id.
// A nil fn behaves like Default.
func String(fn ResolveFunc, value interface{}) (string, bool) {
	if fn == nil {
		fn = Default
	}
	id, ok := fn(value).(string)
	return id, ok
}
