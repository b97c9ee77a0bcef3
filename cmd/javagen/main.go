package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var configPath string

func main() {
	var (
		verbosity int
		logPath   string
	)

	rootCmd := &cobra.Command{
		Use:          "javagen",
		Short:        "Generate Spring Boot projects from a YAML definition",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath != "" {
				commonlog.Configure(verbosity, &logPath)
			} else {
				commonlog.Configure(verbosity, nil)
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: javagen.yaml, javagen.yml or javagen.toml)")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPomCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
