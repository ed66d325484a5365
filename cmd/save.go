package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Build the selection and store it as a named manifest",
	Long: `Build the active selection (rewriting package.xml) and store a copy as
<project>/.sf-deployer/<name>.xml. The selection is embedded in the file so
'sfd load <name>' can restore it.

Characters outside [A-Za-z0-9._-] in the file name are replaced with '_'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	sel, err := a.selections.Get()
	if err != nil {
		return err
	}

	saved, err := a.named.Save(cmd.Context(), sel, args[0])
	if err != nil {
		return explainBuildErr(err)
	}
	printOK(args[0], fmt.Sprintf("Saved %d selection(s) to %s", len(sel), saved.Path))
	return nil
}
