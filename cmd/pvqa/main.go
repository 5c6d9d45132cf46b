package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dotenvPath string
		yamlPath   string
	)

	root := &cobra.Command{
		Use:   "pvqa",
		Short: "Pharmacovigilance question-answering engine",
	}
	root.PersistentFlags().StringVar(&dotenvPath, "env-file", ".env", "optional .env file to load")
	root.PersistentFlags().StringVar(&yamlPath, "config", "", "optional YAML overrides file (source/edge weights)")

	root.AddCommand(newQueryCmd(&dotenvPath, &yamlPath))
	root.AddCommand(newServeCmd(&dotenvPath, &yamlPath))
	return root
}
