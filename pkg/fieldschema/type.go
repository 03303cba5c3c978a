package fieldschema

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindDate
	KindObject
	KindArray
	KindOneOf
)

var kindNames = map[Kind]string{
	KindUnknown: "Unknown",
	KindString:  "String",
	KindNumber:  "Number",
	KindInteger: "Integer",
	KindBoolean: "Boolean",
	KindDate:    "Date",
	KindObject:  "Object",
	KindArray:   "Array",
	KindOneOf:   "OneOf",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is a validation type as understood by the validation layer.
// Types are immutable once constructed and are shared freely between schemas.
type Type struct {
	Kind     Kind
	Blackbox bool
	OneOf    []*Type
}

var (
	String  = &Type{Kind: KindString}
	Number  = &Type{Kind: KindNumber}
	Integer = &Type{Kind: KindInteger}
	Boolean = &Type{Kind: KindBoolean}
	Date    = &Type{Kind: KindDate}
	Object  = &Type{Kind: KindObject}
	Array   = &Type{Kind: KindArray}
)

// Blackbox returns an object type which accepts any shape without coercion.
func Blackbox() *Type {
	return &Type{Kind: KindObject, Blackbox: true}
}

// OneOf returns a union accepting a value valid for any of the given types.
// Nil members are dropped.
func OneOf(types ...*Type) *Type {
	members := make([]*Type, 0, len(types))
	for i := range types {
		if types[i] != nil {
			members = append(members, types[i])
		}
	}
	return &Type{Kind: KindOneOf, OneOf: members}
}

// ParseType maps a primitive type name (case insensitive) to its Type.
func ParseType(name string) (*Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string":
		return String, nil
	case "number", "float":
		return Number, nil
	case "integer", "int":
		return Integer, nil
	case "boolean", "bool":
		return Boolean, nil
	case "date":
		return Date, nil
	case "object":
		return Object, nil
	case "blackbox":
		return Blackbox(), nil
	}
	return nil, fmt.Errorf("fieldschema: unknown type %q", name)
}

func (t *Type) IsBlackbox() bool {
	return t != nil && t.Kind == KindObject && t.Blackbox
}

func (t *Type) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case KindObject:
		if t.Blackbox {
			return "Object{blackbox}"
		}
	case KindOneOf:
		members := make([]string, len(t.OneOf))
		for i := range t.OneOf {
			members[i] = t.OneOf[i].String()
		}
		return "OneOf(" + strings.Join(members, ", ") + ")"
	}
	return t.Kind.String()
}

func (t *Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
