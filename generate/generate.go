// Package generate translates a project definition into Java compilation
// units, Spring resources and a Maven POM.
package generate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javagen/config"
	"github.com/dhamidi/javagen/definition"
	"github.com/dhamidi/javagen/java"
	"github.com/dhamidi/javagen/pom"
)

var log = commonlog.GetLogger("javagen.generate")

const (
	springBoot      = "org.springframework.boot."
	springData      = "org.springframework.data."
	springWeb       = "org.springframework.web.bind.annotation."
	applicationName = "Application"
	mysqlDriver     = "com.mysql.cj.jdbc.Driver"
)

var mappingAnnotations = map[string]string{
	"GET":    springWeb + "GetMapping",
	"POST":   springWeb + "PostMapping",
	"PUT":    springWeb + "PutMapping",
	"DELETE": springWeb + "DeleteMapping",
	"PATCH":  springWeb + "PatchMapping",
}

type Generator struct {
	def *definition.Definition
	cfg *config.Config
}

// New returns a generator for def. A nil cfg selects config.Default.
func New(def *definition.Definition, cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{def: def, cfg: cfg}
}

// Resource is a file below the project's resource directory.
type Resource struct {
	Name string
	Data []byte
}

// Output is everything generated for one definition.
type Output struct {
	Units     []*java.CompilationUnit
	Resources []Resource
	POM       *pom.Project
}

func (g *Generator) Generate() (*Output, error) {
	appYAML, err := g.ApplicationYAML()
	if err != nil {
		return nil, err
	}
	p, err := g.POM()
	if err != nil {
		return nil, err
	}
	out := &Output{
		Units:     g.Units(),
		Resources: []Resource{{Name: "application.yml", Data: appYAML}},
		POM:       p,
	}
	log.Infof("generated %d units for %s", len(out.Units), g.def.Project)
	return out, nil
}

// Units returns the application class, then entities, DTOs and controllers
// in declaration order.
func (g *Generator) Units() []*java.CompilationUnit {
	units := []*java.CompilationUnit{g.Application()}
	for _, e := range g.def.Entities() {
		units = append(units, g.Entity(e))
	}
	for _, dto := range g.def.Dtos {
		units = append(units, g.Dto(dto))
	}
	for _, api := range g.def.APIs {
		units = append(units, g.Controller(api))
	}
	return units
}

// Application returns the Spring Boot entry point.
func (g *Generator) Application() *java.CompilationUnit {
	main := java.NewMethod("main", "void", java.Public|java.Static).
		AddParameter(java.NewParameter("args", "java.lang.String[]")).
		Statement("$T.run($T.class, args);", springBoot+"SpringApplication", g.def.BasePackage+"."+applicationName)

	class := java.NewTypeDeclaration(java.Public, applicationName, "").
		AddAnnotation(java.NewAnnotation(springBoot + "autoconfigure.SpringBootApplication")).
		AddMethod(main)

	return java.NewCompilationUnit(g.def.BasePackage, applicationName).AddType(class)
}

// Entity returns the Spring Data JDBC mapped class of an entity.
func (g *Generator) Entity(data *definition.Data) *java.CompilationUnit {
	table := data.Table
	if table == "" {
		table = strcase.ToSnake(data.Name)
	}
	class := g.bean(data).
		AddAnnotation(java.NewAnnotation(springData+"relational.core.mapping.Table", java.PlainAttribute("value", table)))

	for i, f := range data.Fields {
		column := f.Column
		if column == "" {
			column = strcase.ToSnake(f.Name)
		}
		field := class.Fields[i]
		if f.Type == definition.TypeAutoID {
			field.AddAnnotation(java.NewAnnotation(springData + "annotation.Id"))
		}
		field.AddAnnotation(java.NewAnnotation(springData+"relational.core.mapping.Column", java.PlainAttribute("value", column)))
	}
	return g.unit(data, class)
}

// Dto returns the plain bean class of a DTO.
func (g *Generator) Dto(data *definition.Data) *java.CompilationUnit {
	return g.unit(data, g.bean(data))
}

func (g *Generator) unit(data *definition.Data, class *java.TypeDeclaration) *java.CompilationUnit {
	name := g.ClassName(data)
	return java.NewCompilationUnit(java.PackageOf(name), java.SimpleName(name)).AddType(class)
}

// bean declares private fields with a getter and setter each.
func (g *Generator) bean(data *definition.Data) *java.TypeDeclaration {
	class := java.NewTypeDeclaration(java.Public, java.SimpleName(g.ClassName(data)), "")
	for _, f := range data.Fields {
		typ := g.javaType(f.Type, f.Ref, f.List)
		class.AddField(java.NewField(f.Name, typ, java.Private, ""))
	}
	for _, f := range data.Fields {
		typ := g.javaType(f.Type, f.Ref, f.List)
		prop := strcase.ToCamel(f.Name)
		class.AddMethod(java.NewMethod("get"+prop, typ, java.Public).
			Statement("return this.$V;", f.Name))
		class.AddMethod(java.NewMethod("set"+prop, "void", java.Public).
			AddParameter(java.NewParameter(f.Name, typ)).
			Statement("this.$V = $V;", f.Name, f.Name))
	}
	return class
}

// Controller returns the REST controller of an API.
func (g *Generator) Controller(api *definition.API) *java.CompilationUnit {
	name := strcase.ToCamel(api.Name) + "Controller"
	class := java.NewTypeDeclaration(java.Public, name, "").
		AddAnnotation(java.NewAnnotation(springWeb + "RestController"))
	if api.BaseURL != "" {
		class.AddAnnotation(java.NewAnnotation(springWeb+"RequestMapping", java.PlainAttribute("value", api.BaseURL)))
	}
	for _, req := range api.Requests {
		class.AddMethod(g.handler(req))
	}
	return java.NewCompilationUnit(g.subPackage(controllerPackage), name).AddType(class)
}

func (g *Generator) handler(req *definition.Request) *java.MethodDeclaration {
	method := strings.ToUpper(req.Method)
	m := java.NewMethod(req.Name, "java.lang.Object", java.Public)

	mapping := java.NewAnnotation(mappingAnnotations[method])
	if req.Path != "" {
		mapping.AddAttribute(java.PlainAttribute("value", req.Path))
	}
	m.AddAnnotation(mapping)

	hasBody := method == "POST" || method == "PUT" || method == "PATCH"
	for _, p := range req.Params {
		param := java.NewParameter(p.ParamName(), g.javaType(p.Type, p.Ref, p.List))
		switch {
		case p.PathVariable != "":
			param.AddAnnotation(java.NewAnnotation(springWeb+"PathVariable", java.PlainAttribute("value", p.PathVariable)))
		case hasBody && isRefType(p.Type, p.List):
			param.AddAnnotation(java.NewAnnotation(springWeb + "RequestBody"))
			hasBody = false
		default:
			param.AddAnnotation(java.NewAnnotation(springWeb+"RequestParam", java.PlainAttribute("value", p.ParamName())))
		}
		m.AddParameter(param)
	}

	return m.Statement("throw new $T($V);", "java.lang.UnsupportedOperationException", java.QuoteString(req.Name+" is not implemented"))
}

type appConfig struct {
	Spring springConfig `yaml:"spring"`
}

type springConfig struct {
	Application struct {
		Name string `yaml:"name"`
	} `yaml:"application"`
	Datasource *datasourceConfig `yaml:"datasource,omitempty"`
}

type datasourceConfig struct {
	URL             string `yaml:"url"`
	Username        string `yaml:"username,omitempty"`
	Password        string `yaml:"password,omitempty"`
	DriverClassName string `yaml:"driver-class-name"`
}

// DatasourceURL returns the JDBC URL of ds.
func DatasourceURL(ds *definition.Datasource) string {
	return fmt.Sprintf("jdbc:mysql://%s:%d/%s", ds.Host, ds.Port, ds.Database)
}

// ApplicationYAML returns application.yml. Only the first datasource is
// configured.
func (g *Generator) ApplicationYAML() ([]byte, error) {
	var cfg appConfig
	cfg.Spring.Application.Name = g.def.Project
	if len(g.def.Datasources) > 0 {
		ds := g.def.Datasources[0]
		if len(g.def.Datasources) > 1 {
			log.Warningf("%d datasources defined, configuring only %s", len(g.def.Datasources), ds.Database)
		}
		cfg.Spring.Datasource = &datasourceConfig{
			URL:             DatasourceURL(ds),
			Username:        ds.Username,
			Password:        ds.Password,
			DriverClassName: mysqlDriver,
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode application.yml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode application.yml: %w", err)
	}
	return buf.Bytes(), nil
}

// POM returns the Maven project: the definition's coordinates, the
// configured parent, plugins and JDK version, and the Spring starters the
// definition needs merged with the configured dependencies.
func (g *Generator) POM() (*pom.Project, error) {
	group := g.def.Group
	if group == "" {
		group = g.def.BasePackage
	}
	p := pom.NewProject(group, g.def.Project)
	if g.def.Version != "" {
		p.Version = g.def.Version
	}
	p.Name = g.def.Project
	p.Description = g.def.Description
	p.URL = g.def.Git

	if parent := g.cfg.Java.PomParent; parent != nil {
		cp := *parent
		p.Parent = &cp
	} else {
		p.Parent = nil
	}
	if plugins := g.cfg.Java.PomPlugins; len(plugins) > 0 {
		p.Build = &pom.Build{Plugins: append([]pom.Plugin(nil), plugins...)}
	} else {
		p.Build = nil
	}
	p.SetProperty("java.version", g.cfg.Java.JDKVersion)

	p.AddDependencies(pom.Dependency{GroupID: pom.SpringBootGroupID, ArtifactID: "spring-boot-starter-web"})
	if len(g.def.Datasources) > 0 {
		p.AddDependencies(
			pom.Dependency{GroupID: pom.SpringBootGroupID, ArtifactID: "spring-boot-starter-data-jdbc"},
			pom.Dependency{GroupID: "mysql", ArtifactID: "mysql-connector-java", Scope: "runtime"},
		)
	}
	p.AddDependencies(pom.Dependency{GroupID: pom.SpringBootGroupID, ArtifactID: "spring-boot-starter-test", Scope: "test"})

	extra, err := g.cfg.Dependencies()
	if err != nil {
		return nil, err
	}
	p.AddDependencies(extra...)
	return p, nil
}
