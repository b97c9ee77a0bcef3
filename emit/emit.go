// Package emit writes compilation units to a project's source tree, one
// unit per task on a bounded worker pool.
package emit

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/dhamidi/javagen/format"
	"github.com/dhamidi/javagen/java"
	"github.com/dhamidi/javagen/project"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("javagen.emit")

// Result is the outcome of emitting one unit.
type Result struct {
	Unit    string
	Path    string
	Changed bool
	Err     error
}

type Emitter struct {
	project *project.Project
	workers int
	policy  java.CollisionPolicy
}

type Option func(*Emitter)

// WithWorkers bounds the number of units rendered at once. Values below one
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Emitter) {
		e.workers = n
	}
}

func WithCollisionPolicy(policy java.CollisionPolicy) Option {
	return func(e *Emitter) {
		e.policy = policy
	}
}

func New(p *project.Project, opts ...Option) *Emitter {
	e := &Emitter{project: p}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// EmitUnit renders unit and writes it to its source file. Nothing is written
// when rendering fails.
func (e *Emitter) EmitUnit(unit *java.CompilationUnit) Result {
	res := Result{
		Unit: unit.QualifiedName(),
		Path: e.project.SourcePath(unit.Package, unit.Name),
	}
	text, err := format.MarshalJava(unit, format.WithCollisionPolicy(e.policy))
	if err != nil {
		res.Err = fmt.Errorf("render %s: %w", res.Unit, err)
		return res
	}
	_, res.Changed, err = e.project.WriteSourceFile(unit.Package, unit.Name, text)
	if err != nil {
		res.Err = fmt.Errorf("write %s: %w", res.Unit, err)
		return res
	}
	if res.Changed {
		log.Debugf("wrote %s", res.Path)
	} else {
		log.Debugf("unchanged %s", res.Path)
	}
	return res
}

// Emit writes every unit. A failing unit does not stop its siblings; the
// returned error joins every unit error. Results are in input order.
func (e *Emitter) Emit(ctx context.Context, units []*java.CompilationUnit) ([]Result, error) {
	results := make([]Result, len(units))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Unit: unit.QualifiedName(), Err: err}
				return nil
			}
			results[i] = e.EmitUnit(unit)
			return nil
		})
	}
	g.Wait()

	var errs []error
	changed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			log.Errorf("%s", r.Err)
			errs = append(errs, r.Err)
		case r.Changed:
			changed++
		}
	}
	log.Infof("emitted %d units, %d changed, %d failed", len(units), changed, len(errs))
	return results, errors.Join(errs...)
}

// EmitFile writes data to path, which is reported as name.
func (e *Emitter) EmitFile(name, path string, data []byte) Result {
	res := Result{Unit: name, Path: path}
	changed, err := project.WriteFile(path, data)
	if err != nil {
		res.Err = fmt.Errorf("write %s: %w", name, err)
		return res
	}
	res.Changed = changed
	if changed {
		log.Debugf("wrote %s", path)
	} else {
		log.Debugf("unchanged %s", path)
	}
	return res
}

// EmitResource writes data below the project's resource directory.
func (e *Emitter) EmitResource(name string, data []byte) Result {
	return e.EmitFile(name, e.project.ResourcePath(name), data)
}
