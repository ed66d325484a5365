package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved named manifests",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	names, err := a.named.List()
	if err != nil {
		return err
	}

	printSection("Named Manifests")
	if len(names) == 0 {
		printSkip("", "No named manifests saved yet")
		return nil
	}
	for _, n := range names {
		printInfo("", n)
	}
	return nil
}
