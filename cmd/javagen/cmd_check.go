package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javagen/definition"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <definition.yaml>...",
		Short: "Validate definition files",
		Long: `Validate definition files and print every problem as
file:line:column: message.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				_, err := definition.Load(path)
				if err == nil {
					continue
				}
				failed++
				var verr *definition.ValidationError
				if !errors.As(err, &verr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), verr.Error())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d definitions have problems", failed, len(args))
			}
			return nil
		},
	}
}
