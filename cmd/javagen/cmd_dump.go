package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javagen/format"
	"github.com/dhamidi/javagen/java"
	"github.com/dhamidi/javagen/project"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string
	var dumpDir string

	cmd := &cobra.Command{
		Use:   "dump <definition.yaml>",
		Short: "Print the Java model generated from a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGenerator(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dumpDir != "" {
				if dumpFormat != "java" {
					return fmt.Errorf("--dir requires --format java")
				}
				proj := project.New(dumpDir).WithSourceDir(cfg.Output.SourceDir, "")
				return dumpSources(w, proj, g.Units(), cfg.CollisionPolicy())
			}

			var enc format.Encoder
			switch dumpFormat {
			case "json":
				enc = format.NewJSONEncoder(w)
			case "java":
				enc = format.NewJavaEncoder(w, format.WithCollisionPolicy(cfg.CollisionPolicy()))
			case "line":
				enc = format.NewLineEncoder(w)
			default:
				return fmt.Errorf("unknown format: %s (expected json, java, or line)", dumpFormat)
			}

			for i, unit := range g.Units() {
				if i > 0 && dumpFormat != "line" {
					fmt.Fprintln(w)
				}
				if err := enc.Encode(unit); err != nil {
					return fmt.Errorf("encode %s: %w", unit.QualifiedName(), err)
				}
			}
			if dumpFormat == "json" {
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, java, line)")
	cmd.Flags().StringVarP(&dumpDir, "dir", "d", "", "write one Java source file per unit below this directory")

	return cmd
}

// dumpSources encodes every unit straight into its source file, truncating
// whatever was there. Unlike generate it neither skips unchanged files nor
// writes through a temporary file.
func dumpSources(w io.Writer, proj *project.Project, units []*java.CompilationUnit, policy java.CollisionPolicy) error {
	for _, unit := range units {
		f, err := proj.CreateSourceFile(unit.Package, unit.Name)
		if err != nil {
			return err
		}
		err = format.NewJavaEncoder(f, format.WithCollisionPolicy(policy)).Encode(unit)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", unit.QualifiedName(), err)
		}
		fmt.Fprintf(w, "wrote %s\n", f.Name())
	}
	return nil
}
