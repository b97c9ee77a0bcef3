package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DataType is the type of a field or request parameter.
type DataType int

const (
	TypeUnset DataType = iota
	TypeAutoID
	TypeString
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeDateTime
	TypeObject
	TypeList
	TypeRef
)

var dataTypeNames = [...]string{
	TypeUnset:    "",
	TypeAutoID:   "autoId",
	TypeString:   "string",
	TypeInt8:     "int8",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeFloat32:  "float32",
	TypeFloat64:  "float64",
	TypeBool:     "bool",
	TypeDateTime: "dateTime",
	TypeObject:   "object",
	TypeList:     "list",
	TypeRef:      "ref",
}

func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return fmt.Sprintf("DataType(%d)", int(t))
	}
	return dataTypeNames[t]
}

// DataTypeNames lists the spellings accepted in a definition file.
func DataTypeNames() []string {
	return append([]string(nil), dataTypeNames[1:]...)
}

// ParseDataType looks up a data type by its spelling.
func ParseDataType(s string) (DataType, bool) {
	for i, name := range dataTypeNames {
		if i > 0 && name == s {
			return DataType(i), true
		}
	}
	return TypeUnset, false
}

// IsScalar reports whether t maps to a single value type.
func (t DataType) IsScalar() bool {
	return t > TypeUnset && t < TypeList
}

func (t DataType) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *DataType) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: column %d: data type must be a string", node.Line, node.Column),
		}}
	}
	dt, ok := ParseDataType(node.Value)
	if !ok {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: column %d: unknown data type %q", node.Line, node.Column, node.Value),
		}}
	}
	*t = dt
	return nil
}
