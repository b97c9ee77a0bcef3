package generate

import (
	"github.com/iancoleman/strcase"

	"github.com/dhamidi/javagen/definition"
)

const (
	entityPackage     = "entity"
	dtoPackage        = "dto"
	controllerPackage = "controller"
)

var scalarTypes = map[definition.DataType]string{
	definition.TypeAutoID:   "java.lang.Long",
	definition.TypeString:   "java.lang.String",
	definition.TypeInt8:     "java.lang.Byte",
	definition.TypeInt16:    "java.lang.Short",
	definition.TypeInt32:    "java.lang.Integer",
	definition.TypeInt64:    "java.lang.Long",
	definition.TypeFloat32:  "java.lang.Float",
	definition.TypeFloat64:  "java.lang.Double",
	definition.TypeBool:     "java.lang.Boolean",
	definition.TypeDateTime: "java.time.LocalDateTime",
	definition.TypeObject:   "java.lang.Object",
}

// ScalarType returns the Java type of a scalar data type.
func ScalarType(t definition.DataType) (string, bool) {
	name, ok := scalarTypes[t]
	return name, ok
}

func (g *Generator) subPackage(name string) string {
	return g.def.BasePackage + "." + name
}

// ClassName returns the qualified Java class generated for data.
func (g *Generator) ClassName(data *definition.Data) string {
	pkg := entityPackage
	if data.Kind == definition.KindDto {
		pkg = dtoPackage
	}
	return g.subPackage(pkg) + "." + strcase.ToCamel(data.Name)
}

// javaType resolves a field or parameter type. Lists become arrays of their
// element type.
func (g *Generator) javaType(t definition.DataType, ref string, list *definition.ListType) string {
	switch t {
	case definition.TypeRef:
		return g.refType(ref)
	case definition.TypeList:
		if list == nil {
			return "java.lang.Object[]"
		}
		if list.Ref != "" {
			return g.refType(list.Ref) + "[]"
		}
		return g.javaType(list.Type, "", nil) + "[]"
	}
	if name, ok := ScalarType(t); ok {
		return name
	}
	return "java.lang.Object"
}

func (g *Generator) refType(ref string) string {
	data, ok := g.def.Lookup(ref)
	if !ok {
		log.Warningf("unresolved ref %q", ref)
		return "java.lang.Object"
	}
	return g.ClassName(data)
}

func isRefType(t definition.DataType, list *definition.ListType) bool {
	return t == definition.TypeRef || (t == definition.TypeList && list != nil && list.Ref != "")
}
