package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javagen/pom"
	"github.com/dhamidi/javagen/project"
)

func newPomCmd() *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "pom <definition.yaml>",
		Short: "Write only pom.xml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := loadGenerator(args[0])
			if err != nil {
				return err
			}
			p, err := g.POM()
			if err != nil {
				return err
			}
			if toStdout {
				return writePOM(cmd.OutOrStdout(), p)
			}

			data, err := pom.Marshal(p)
			if err != nil {
				return fmt.Errorf("render pom.xml: %w", err)
			}
			path := filepath.Join(cfg.Output.Root, "pom.xml")
			changed, err := project.WriteFile(path, data)
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print pom.xml instead of writing it")

	return cmd
}
