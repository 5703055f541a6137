package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/feed"
	"github.com/packsmith/packsmith/harness"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a locally built package into a throwaway workspace",
	Long: `Runs the full isolated install flow once, for debugging a feed:
locate the artifact, open a workspace and feed context, install, then print
the captured package-manager output. The workspace is deleted afterwards
like in any test run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootArgs, _ := cmd.Flags().GetStringArray("root")
		roots, err := resolveRoots(rootArgs)
		if err != nil {
			return err
		}

		mgrName, _ := cmd.Flags().GetString("manager")
		mgr, err := feed.ManagerByName(mgrName)
		if err != nil {
			return err
		}
		prerelease, _ := cmd.Flags().GetBool("prerelease")

		s := &harness.Scenario{
			Manager:       mgr,
			ArtifactRoots: roots,
			Package:       args[0],
			Prerelease:    prerelease,
		}
		return s.Run(cmd.Context(), func(ctx context.Context, env *harness.Env) error {
			fmt.Printf("installed %s %s into %s\n", env.Artifact.Name, env.Artifact.Version, env.Feed.BinDir())
			if env.Install.Stdout != "" {
				fmt.Print(env.Install.Stdout)
			}
			return nil
		})
	},
}

func init() {
	installCmd.Flags().StringArray("root", nil, "Artifact root to scan (repeatable)")
	installCmd.Flags().String("manager", "", "Package manager: nuget (default) or npm")
	installCmd.Flags().Bool("prerelease", false, "Allow prerelease versions")
	rootCmd.AddCommand(installCmd)
}
