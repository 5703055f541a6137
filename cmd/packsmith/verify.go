package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/harness"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <scenario.yaml>",
	Short: "Run a declarative install-and-exercise scenario",
	Long: `Loads a YAML scenario (package, args, expected output), installs
the package into an isolated workspace, runs it, and compares the observed
behavior against the expectations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := harness.LoadScenarioFile(args[0])
		if err != nil {
			return err
		}

		rootArgs, _ := cmd.Flags().GetStringArray("root")
		roots, err := resolveRoots(rootArgs)
		if err != nil {
			return err
		}

		if err := sf.Verify(cmd.Context(), roots); err != nil {
			return err
		}
		fmt.Printf("ok: %s\n", sf.Package)
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringArray("root", nil, "Artifact root to scan (repeatable)")
	rootCmd.AddCommand(verifyCmd)
}
