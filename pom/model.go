package pom

import (
	"encoding/xml"
)

const (
	ModelVersion   = "4.0.0"
	DefaultVersion = "0.0.1"

	Namespace      = "http://maven.apache.org/POM/4.0.0"
	XSINamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation = "http://maven.apache.org/POM/4.0.0 http://maven.apache.org/xsd/maven-4.0.0.xsd"

	SpringBootGroupID = "org.springframework.boot"
	SpringBootVersion = "2.6.6"
)

type Project struct {
	XMLName        xml.Name `xml:"project"`
	Xmlns          string   `xml:"xmlns,attr,omitempty"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr,omitempty"`

	ModelVersion         string                `xml:"modelVersion"`
	Parent               *Parent               `xml:"parent,omitempty"`
	GroupID              string                `xml:"groupId,omitempty"`
	ArtifactID           string                `xml:"artifactId"`
	Version              string                `xml:"version,omitempty"`
	Packaging            string                `xml:"packaging,omitempty"`
	Name                 string                `xml:"name,omitempty"`
	Description          string                `xml:"description,omitempty"`
	URL                  string                `xml:"url,omitempty"`
	Properties           *Properties           `xml:"properties,omitempty"`
	DependencyManagement *DependencyManagement `xml:"dependencyManagement,omitempty"`
	Dependencies         []Dependency          `xml:"dependencies>dependency"`
	Build                *Build                `xml:"build,omitempty"`
	Repositories         []Repository          `xml:"repositories>repository"`
	PluginRepositories   []Repository          `xml:"pluginRepositories>pluginRepository"`
}

type Parent struct {
	GroupID      string `xml:"groupId" yaml:"group_id" toml:"group_id"`
	ArtifactID   string `xml:"artifactId" yaml:"artifact_id" toml:"artifact_id"`
	Version      string `xml:"version" yaml:"version" toml:"version"`
	RelativePath string `xml:"relativePath,omitempty" yaml:"relative_path,omitempty" toml:"relative_path,omitempty"`
}

// Property is one entry of the <properties> block. The element name is the
// property name.
type Property struct {
	Name  string
	Value string
}

// Properties keeps entries in insertion order so the written POM is stable.
type Properties struct {
	Entries []Property
}

// Set replaces the value of name, or appends it.
func (p *Properties) Set(name, value string) {
	for i := range p.Entries {
		if p.Entries[i].Name == name {
			p.Entries[i].Value = value
			return
		}
	}
	p.Entries = append(p.Entries, Property{Name: name, Value: value})
}

func (p *Properties) Get(name string) (string, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

func (p *Properties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, entry := range p.Entries {
		if err := e.EncodeElement(entry.Value, xml.StartElement{Name: xml.Name{Local: entry.Name}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type Dependency struct {
	GroupID    string      `xml:"groupId" yaml:"group_id" toml:"group_id"`
	ArtifactID string      `xml:"artifactId" yaml:"artifact_id" toml:"artifact_id"`
	Version    string      `xml:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Type       string      `xml:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Classifier string      `xml:"classifier,omitempty" yaml:"classifier,omitempty" toml:"classifier,omitempty"`
	Scope      string      `xml:"scope,omitempty" yaml:"scope,omitempty" toml:"scope,omitempty"`
	Optional   string      `xml:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	Exclusions []Exclusion `xml:"exclusions>exclusion" yaml:"exclusions,omitempty" toml:"exclusions,omitempty"`
}

// Key returns "groupId:artifactId".
func (d Dependency) Key() string {
	return d.GroupID + ":" + d.ArtifactID
}

type Exclusion struct {
	GroupID    string `xml:"groupId" yaml:"group_id" toml:"group_id"`
	ArtifactID string `xml:"artifactId" yaml:"artifact_id" toml:"artifact_id"`
}

type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

type Build struct {
	FinalName string   `xml:"finalName,omitempty"`
	Plugins   []Plugin `xml:"plugins>plugin"`
}

type Plugin struct {
	GroupID       string         `xml:"groupId" yaml:"group_id" toml:"group_id"`
	ArtifactID    string         `xml:"artifactId" yaml:"artifact_id" toml:"artifact_id"`
	Version       string         `xml:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Configuration *Configuration `xml:"configuration,omitempty" yaml:"-" toml:"-"`
}

// Configuration is a plugin configuration block written verbatim.
type Configuration struct {
	Raw string `xml:",innerxml"`
}

type Repository struct {
	ID   string `xml:"id"`
	Name string `xml:"name,omitempty"`
	URL  string `xml:"url"`
}

// SpringBootParent returns the Spring Boot starter parent.
func SpringBootParent() *Parent {
	return &Parent{
		GroupID:    SpringBootGroupID,
		ArtifactID: "spring-boot-starter-parent",
		Version:    SpringBootVersion,
	}
}

// SpringBootPlugin returns the Spring Boot Maven plugin.
func SpringBootPlugin() Plugin {
	return Plugin{
		GroupID:    SpringBootGroupID,
		ArtifactID: "spring-boot-maven-plugin",
		Version:    SpringBootVersion,
	}
}

// NewProject returns a project with the default version, the Spring Boot
// parent and the Spring Boot build plugin.
func NewProject(groupID, artifactID string) *Project {
	return &Project{
		ModelVersion: ModelVersion,
		Parent:       SpringBootParent(),
		GroupID:      groupID,
		ArtifactID:   artifactID,
		Version:      DefaultVersion,
		Build: &Build{
			Plugins: []Plugin{SpringBootPlugin()},
		},
	}
}

// SetProperty sets a property, creating the properties block if needed.
func (p *Project) SetProperty(name, value string) {
	if p.Properties == nil {
		p.Properties = &Properties{}
	}
	p.Properties.Set(name, value)
}

// AddDependencies merges deps into the project's dependencies.
func (p *Project) AddDependencies(deps ...Dependency) {
	p.Dependencies = MergeDependencies(p.Dependencies, deps)
}
