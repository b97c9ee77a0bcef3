package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultSrcDir      = "src/main/java"
	defaultResourceDir = "src/main/resources"
	defaultTestDir     = "src/test/java"
	defaultExtension   = "java"
)

// Project is the on-disk layout of a generated Maven project.
type Project struct {
	RootDir     string
	SrcDir      string
	ResourceDir string
	TestDir     string
	Extension   string
}

// New returns the conventional Maven layout under rootDir.
func New(rootDir string) *Project {
	return &Project{
		RootDir:     rootDir,
		SrcDir:      filepath.Join(rootDir, filepath.FromSlash(defaultSrcDir)),
		ResourceDir: filepath.Join(rootDir, filepath.FromSlash(defaultResourceDir)),
		TestDir:     filepath.Join(rootDir, filepath.FromSlash(defaultTestDir)),
		Extension:   defaultExtension,
	}
}

// WithSourceDir overrides the source and resource directories. Relative
// paths are taken relative to the root directory; empty values keep the
// current setting.
func (p *Project) WithSourceDir(srcDir, resourceDir string) *Project {
	if srcDir != "" {
		p.SrcDir = p.resolve(srcDir)
	}
	if resourceDir != "" {
		p.ResourceDir = p.resolve(resourceDir)
	}
	return p
}

func (p *Project) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.RootDir, filepath.FromSlash(dir))
}

// PackageDir returns the directory holding the sources of pkg.
func (p *Project) PackageDir(pkg string) string {
	if pkg == "" {
		return p.SrcDir
	}
	return filepath.Join(append([]string{p.SrcDir}, strings.Split(pkg, ".")...)...)
}

// SourcePath returns the file path of the unit name in pkg.
func (p *Project) SourcePath(pkg, name string) string {
	return filepath.Join(p.PackageDir(pkg), name+"."+p.Extension)
}

// ResourcePath returns the path of a resource file.
func (p *Project) ResourcePath(name string) string {
	return filepath.Join(p.ResourceDir, filepath.FromSlash(name))
}

// Bootstrap creates the source, resource and test directories.
func (p *Project) Bootstrap() error {
	for _, dir := range []string{p.SrcDir, p.ResourceDir, p.TestDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return nil
}

// CreateSourceFile creates the directories for pkg and opens the unit's file
// for writing, truncating any previous content. It suits streaming an encoder
// straight to disk; WriteFile is the atomic alternative for rendered data.
func (p *Project) CreateSourceFile(pkg, name string) (*os.File, error) {
	if err := os.MkdirAll(p.PackageDir(pkg), 0o755); err != nil {
		return nil, fmt.Errorf("create package directory: %w", err)
	}
	f, err := os.OpenFile(p.SourcePath(pkg, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create source file: %w", err)
	}
	return f, nil
}

// WriteSourceFile writes data as the unit name in pkg. See WriteFile.
func (p *Project) WriteSourceFile(pkg, name string, data []byte) (string, bool, error) {
	path := p.SourcePath(pkg, name)
	changed, err := WriteFile(path, data)
	return path, changed, err
}

// WriteFile replaces the content of path with data. The data goes to a
// temporary file in the same directory which is then renamed over path, so
// readers see either the old or the new content. A file that already holds
// data is left untouched. It reports whether the file changed.
func WriteFile(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return false, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
