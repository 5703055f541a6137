package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "packsmith",
	Short: "Isolated install checks for locally built packages",
	Long: `Packsmith installs locally built package artifacts into throwaway
workspaces with their own feeds and caches, so nothing ever touches the
user's real package state. It is the companion binary to the packsmith
test-harness library; tests themselves run under plain 'go test'.`,
}

func main() {
	ctx := context.Background()

	if err := setupLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version),
		fang.WithCommit(commit),
	); err != nil {
		os.Exit(1)
	}
}
