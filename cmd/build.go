package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/sfd-cli/internal/manifest"
)

var buildCmd = &cobra.Command{
	Use:   "build [path...]",
	Short: "Generate .sf-deployer/package.xml from the selection",
	Long: `Expand the selection, classify every file into a metadata type and
overwrite <project>/.sf-deployer/package.xml.

Paths given on the command line are built instead of the stored selection
and do not change it.`,
	RunE: runBuild,
}

var flagBuildDryRun bool

func init() {
	buildCmd.Flags().BoolVar(&flagBuildDryRun, "dry-run", false, "Print the manifest without writing it")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	sel, err := a.selectionOrArgs(args)
	if err != nil {
		return err
	}

	var res *manifest.Result
	if flagBuildDryRun {
		res, err = a.builder.Assemble(cmd.Context(), sel)
	} else {
		res, err = a.builder.Build(cmd.Context(), sel)
	}
	if err != nil {
		return explainBuildErr(err)
	}

	if flagBuildDryRun {
		fmt.Fprintln(stdout, res.XML)
		return nil
	}
	printTypes(res.Types)
	fmt.Fprintln(stdout)
	printOK("", fmt.Sprintf("Manifest written: %s (%d type(s) from %d file(s))", res.Path, res.Types.Len(), len(res.Files)))
	return nil
}

// selectionOrArgs returns args resolved to absolute paths, or the stored
// selection when no args were given.
func (a *app) selectionOrArgs(args []string) ([]string, error) {
	if len(args) > 0 {
		return absPaths(args)
	}
	return a.selections.Get()
}

func printTypes(types *manifest.TypeMap) {
	printSection("Manifest")
	for _, typ := range types.Types() {
		printBullet(typ)
		for _, m := range types.Members(typ) {
			printOK("", m)
		}
	}
}

// explainBuildErr adds a hint to the errors a user can act on.
func explainBuildErr(err error) error {
	var nre *manifest.NoRecognizedTypesError
	switch {
	case errors.Is(err, manifest.ErrEmptySelection):
		return fmt.Errorf("%w\n  Run 'sfd select add <path>' first.", err)
	case errors.As(err, &nre):
		if len(nre.Files) > 0 {
			printBullet("Unrecognized files")
			for _, f := range nre.Files {
				printMiss("", f)
			}
			fmt.Fprintln(stdout)
		}
		return fmt.Errorf("%w\n  Run 'sfd classify <path>' to see how files are matched.", err)
	}
	return err
}
