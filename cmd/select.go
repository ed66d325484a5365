package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/sfd-cli/internal/selection"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Manage the active selection of files and folders",
	Long: `The active selection is stored in <project>/.sf-deployer/selection.json
and is what 'sfd build' and 'sfd save' work from.`,
}

var selectAddCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add files or folders to the selection",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSelectAdd,
}

var selectRemoveCmd = &cobra.Command{
	Use:     "remove <path>...",
	Aliases: []string{"rm"},
	Short:   "Remove files or folders from the selection",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSelectRemove,
}

var selectClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the selection",
	Args:  cobra.NoArgs,
	RunE:  runSelectClear,
}

var selectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the selection",
	Args:  cobra.NoArgs,
	RunE:  runSelectShow,
}

func init() {
	selectCmd.AddCommand(selectAddCmd, selectRemoveCmd, selectClearCmd, selectShowCmd)
	rootCmd.AddCommand(selectCmd)
}

func runSelectAdd(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	paths, err := absPaths(args)
	if err != nil {
		return err
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			printMiss(a.display(p), "not found, not added")
			continue
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 {
		return fmt.Errorf("none of the given paths exist")
	}

	var before, after int
	err = a.selections.Update(func(current []string) []string {
		next := selection.Add(current, existing)
		before, after = len(current), len(next)
		return next
	})
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Added %d path(s); %d selected", after-before, after))
	return nil
}

func runSelectRemove(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	paths, err := absPaths(args)
	if err != nil {
		return err
	}
	// Entries may have been recorded verbatim by a loaded manifest.
	paths = append(paths, args...)

	var before, after int
	err = a.selections.Update(func(current []string) []string {
		next := selection.Remove(current, paths)
		before, after = len(current), len(next)
		return next
	})
	if err != nil {
		return err
	}
	if before == after {
		printSkip("", "Nothing matched; selection unchanged")
		return nil
	}
	printOK("", fmt.Sprintf("Removed %d path(s); %d selected", before-after, after))
	return nil
}

func runSelectClear(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.selections.Set(nil); err != nil {
		return err
	}
	printOK("", "Selection cleared")
	return nil
}

func runSelectShow(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	paths, err := a.selections.Get()
	if err != nil {
		return err
	}

	printSection("Selection")
	if len(paths) == 0 {
		printSkip("", "No selections")
		return nil
	}
	for _, p := range paths {
		if _, err := a.fs.Stat(a.layout.Abs(p)); err != nil {
			printMiss(a.display(p), "missing")
			continue
		}
		printInfo("", a.display(p))
	}
	return nil
}
