package definition

import (
	"strings"
	"unicode"
)

var requestMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

var docStart = Position{Line: 1, Column: 1}

// Validate checks the decoded definition and returns its problems sorted
// by position.
func (d *Definition) Validate() []Problem {
	if d.refs == nil {
		d.buildRefs()
	}
	var ps problems

	if d.Project == "" {
		ps.add(docStart, "project is required")
	}
	switch {
	case d.BasePackage == "":
		ps.add(docStart, "basePackage is required")
	case !isPackageName(d.BasePackage):
		ps.add(docStart, "basePackage %q is not a valid Java package name", d.BasePackage)
	}

	seen := make(map[string]Position)
	checkData := func(data *Data) {
		switch {
		case data.Name == "":
			ps.add(data.Pos, "%s name is required", data.Kind)
		case !isIdentifier(data.Name):
			ps.add(data.Pos, "%s name %q is not a valid Java identifier", data.Kind, data.Name)
		default:
			if prev, dup := seen[data.Name]; dup {
				ps.add(data.Pos, "%q is already defined at %s", data.Name, prev)
			} else {
				seen[data.Name] = data.Pos
			}
		}
		d.validateFields(&ps, data)
	}

	for _, ds := range d.Datasources {
		if ds.Database == "" {
			ps.add(ds.Pos, "datasource database is required")
		}
		if ds.Port < 1 || ds.Port > 65535 {
			ps.add(ds.Pos, "datasource port %d is out of range", ds.Port)
		}
		for _, e := range ds.Entities {
			checkData(e)
		}
	}
	for _, dto := range d.Dtos {
		checkData(dto)
	}

	apis := make(map[string]bool)
	for _, api := range d.APIs {
		switch {
		case api.Name == "":
			ps.add(api.Pos, "api name is required")
		case !isIdentifier(api.Name):
			ps.add(api.Pos, "api name %q is not a valid Java identifier", api.Name)
		case apis[api.Name]:
			ps.add(api.Pos, "api %q is defined twice", api.Name)
		default:
			apis[api.Name] = true
		}
		d.validateRequests(&ps, api)
	}

	sortProblems(ps)
	return ps
}

func (d *Definition) validateFields(ps *problems, data *Data) {
	names := make(map[string]bool)
	ids := 0
	for _, f := range data.Fields {
		switch {
		case f.Name == "":
			ps.add(f.Pos, "field name is required")
		case !isIdentifier(f.Name):
			ps.add(f.Pos, "field name %q is not a valid Java identifier", f.Name)
		case names[f.Name]:
			ps.add(f.Pos, "field %q is defined twice in %s", f.Name, data.Name)
		default:
			names[f.Name] = true
		}
		if f.Type == TypeAutoID {
			ids++
			if data.Kind == KindDto {
				ps.add(f.Pos, "autoId is only allowed in entities")
			}
		}
		d.validateType(ps, f.Pos, f.Type, f.Ref, f.List)
	}
	if ids > 1 {
		ps.add(data.Pos, "%s %s has %d autoId fields", data.Kind, data.Name, ids)
	}
}

func (d *Definition) validateRequests(ps *problems, api *API) {
	names := make(map[string]bool)
	for _, req := range api.Requests {
		switch {
		case req.Name == "":
			ps.add(req.Pos, "request name is required")
		case !isIdentifier(req.Name):
			ps.add(req.Pos, "request name %q is not a valid Java identifier", req.Name)
		case names[req.Name]:
			ps.add(req.Pos, "request %q is defined twice in %s", req.Name, api.Name)
		default:
			names[req.Name] = true
		}
		if !requestMethods[strings.ToUpper(req.Method)] {
			ps.add(req.Pos, "unsupported request method %q", req.Method)
		}
		for _, p := range req.Params {
			if p.ParamName() == "" {
				ps.add(p.Pos, "parameter name is required")
			}
			if p.PathVariable != "" && !strings.Contains(api.BaseURL+req.Path, "{"+p.PathVariable+"}") {
				ps.add(p.Pos, "path variable %q does not appear in %q", p.PathVariable, api.BaseURL+req.Path)
			}
			if p.Type == TypeAutoID {
				ps.add(p.Pos, "autoId is only allowed in entities")
			}
			d.validateType(ps, p.Pos, p.Type, p.Ref, p.List)
		}
	}
}

func (d *Definition) validateType(ps *problems, pos Position, t DataType, ref string, list *ListType) {
	switch t {
	case TypeUnset:
		if ref != "" && list != nil {
			ps.add(pos, "only one of type, ref and list may be given")
		} else {
			ps.add(pos, "type is required")
		}
	case TypeRef:
		if list != nil {
			ps.add(pos, "only one of type, ref and list may be given")
		}
		d.checkRef(ps, pos, ref)
	case TypeList:
		if ref != "" {
			ps.add(pos, "only one of type, ref and list may be given")
		}
		switch {
		case list == nil:
			ps.add(pos, "list type requires a list element")
		case (list.Type == TypeUnset) == (list.Ref == ""):
			ps.add(pos, "list element needs exactly one of type and ref")
		case list.Ref != "":
			d.checkRef(ps, pos, list.Ref)
		case !list.Type.IsScalar() || list.Type == TypeAutoID:
			ps.add(pos, "list element type %s is not allowed", list.Type)
		}
	default:
		if ref != "" || list != nil {
			ps.add(pos, "only one of type, ref and list may be given")
		}
	}
}

func (d *Definition) checkRef(ps *problems, pos Position, ref string) {
	if ref == "" {
		ps.add(pos, "ref type requires a ref")
		return
	}
	if _, ok := d.refs[ref]; !ok {
		ps.add(pos, "unknown ref %q", ref)
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return !javaKeywords[s]
}

func isPackageName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true,
}
