package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/sfd-cli/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Show the metadata type and member each path maps to",
	Long: `Run the classification rules over each path without touching the
filesystem. Useful to see why a file is missing from a manifest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, args []string) error {
	paths, err := absPaths(args)
	if err != nil {
		return err
	}
	for i, p := range paths {
		r := classify.Classify(p)
		switch r.Outcome {
		case classify.Matched:
			printOK(args[i], fmt.Sprintf("%s %s (rule %s)", r.Type, r.Member, r.Rule))
		case classify.Skipped:
			printSkip(args[i], fmt.Sprintf("skipped: %s (rule %s)", r.Reason, r.Rule))
		default:
			printMiss(args[i], "no metadata type")
		}
	}
	return nil
}
