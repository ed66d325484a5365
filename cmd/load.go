package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// maxMissingShown caps how many missing paths load prints one by one.
const maxMissingShown = 5

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Restore the selection stored in a named manifest",
	Long: `Read <project>/.sf-deployer/<name>.xml, drop recorded paths that no
longer exist and make the rest the active selection.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	loaded, err := a.named.Load(args[0])
	if err != nil {
		return err
	}

	if len(loaded.Missing) > 0 {
		printBullet("Missing (dropped from selection)")
		for i, p := range loaded.Missing {
			if i == maxMissingShown {
				printMiss("", fmt.Sprintf("... and %d more", len(loaded.Missing)-maxMissingShown))
				break
			}
			printMiss("", a.display(p))
		}
		fmt.Fprintln(stdout)
		printWarn(args[0], loaded.Summary())
		return nil
	}
	printOK(args[0], loaded.Summary())
	return nil
}
