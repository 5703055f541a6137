package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/karrick/tparse"
	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/artifact"
	"github.com/packsmith/packsmith/harness"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true)
	metaStyle = lipgloss.NewStyle().Faint(true)
)

var locateCmd = &cobra.Command{
	Use:   "locate [root...]",
	Short: "List locally built package artifacts",
	Long: `Recursively scans the artifact roots for built package files
(.nupkg, .tgz) and lists what an isolated install would see. Roots come from
the arguments, packsmith.toml, or PACKSMITH_ARTIFACT_ROOT, in that order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots, err := resolveRoots(args)
		if err != nil {
			return err
		}
		set, err := artifact.Locate(roots...)
		if err != nil {
			return err
		}

		artifacts := set.All()
		if since, _ := cmd.Flags().GetString("since"); since != "" {
			cutoff, err := tparse.ParseNow(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			filtered := artifacts[:0]
			for _, a := range artifacts {
				if a.ModTime.After(cutoff) {
					filtered = append(filtered, a)
				}
			}
			artifacts = filtered
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(artifacts)
		}

		for _, a := range artifacts {
			fmt.Printf("%s %s  %s\n",
				nameStyle.Render(a.Name),
				a.Version,
				metaStyle.Render(fmt.Sprintf("%s, %s, %s",
					humanize.IBytes(uint64(a.Size)),
					humanize.Time(a.ModTime),
					a.Path)))
		}
		return nil
	},
}

func init() {
	locateCmd.Flags().String("since", "", "Only artifacts modified after this time expression (e.g. now-2h)")
	locateCmd.Flags().Bool("json", false, "Output in JSON format")
	rootCmd.AddCommand(locateCmd)
}

// resolveRoots picks the artifact roots: explicit arguments, then
// packsmith.toml in the working directory, then build metadata from the
// environment.
func resolveRoots(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg := harness.DefaultConfig()
	if err := cfg.Load(cwd); err != nil {
		return nil, err
	}
	if cfg.ArtifactRoot != "" {
		return []string{cfg.ArtifactRoot}, nil
	}

	if root := harness.MetadataFromEnv(harness.MetadataPrefix).ArtifactRoot(); root != "" {
		return []string{root}, nil
	}

	return nil, fmt.Errorf("no artifact root: pass one, set artifact_root in packsmith.toml, or export %s%s",
		harness.MetadataPrefix, "ARTIFACT_ROOT")
}
