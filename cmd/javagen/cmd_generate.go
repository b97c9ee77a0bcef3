package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javagen/config"
	"github.com/dhamidi/javagen/emit"
	"github.com/dhamidi/javagen/generate"
	"github.com/dhamidi/javagen/pom"
	"github.com/dhamidi/javagen/project"
)

func newGenerateCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate <definition.yaml>",
		Short: "Generate Java sources, resources and pom.xml",
		Long: `Generate a Spring Boot project from a definition file.

Every entity, DTO and API in the definition becomes one Java source file.
Files are rendered in parallel and only rewritten when their content
changes. application.yml and pom.xml are written next to the sources.

Examples:
  javagen generate project.yaml
  javagen generate -o build/shop project.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGenerator(args[0])
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Output.Root = outDir
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), g, cfg)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "project root directory (overrides output.root)")

	return cmd
}

func runGenerate(ctx context.Context, w io.Writer, g *generate.Generator, cfg *config.Config) error {
	out, err := g.Generate()
	if err != nil {
		return err
	}

	proj := project.New(cfg.Output.Root).WithSourceDir(cfg.Output.SourceDir, cfg.Output.ResourceDir)
	if err := proj.Bootstrap(); err != nil {
		return err
	}

	em := emit.New(proj,
		emit.WithWorkers(cfg.Emit.Workers),
		emit.WithCollisionPolicy(cfg.CollisionPolicy()),
	)
	results, emitErr := em.Emit(ctx, out.Units)

	for _, res := range out.Resources {
		results = append(results, em.EmitResource(res.Name, res.Data))
	}

	pomData, err := pom.Marshal(out.POM)
	if err != nil {
		return fmt.Errorf("render pom.xml: %w", err)
	}
	results = append(results, em.EmitFile("pom.xml", filepath.Join(proj.RootDir, "pom.xml"), pomData))

	var errs []error
	if emitErr != nil {
		errs = append(errs, emitErr)
	}
	written := 0
	for _, res := range results[len(out.Units):] {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	for _, res := range results {
		if res.Err == nil && res.Changed {
			written++
			fmt.Fprintf(w, "wrote %s\n", res.Path)
		}
	}
	fmt.Fprintf(w, "%d files, %d written\n", len(results), written)
	return errors.Join(errs...)
}

func writePOM(w io.Writer, p *pom.Project) error {
	if err := pom.Write(w, p); err != nil {
		return fmt.Errorf("write pom.xml: %w", err)
	}
	return nil
}
