package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/sfd-cli/internal/manifest"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Show the header, selection and types of a named manifest",
	Long: `Display a formatted summary of a saved manifest without changing the
active selection.

Example:
  sfd inspect release-42
  sfd inspect package     (the default package.xml)`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	m, err := a.named.Inspect(args[0])
	if err != nil {
		return err
	}

	printSection(m.Name)
	fmt.Fprintf(stdout, "  %-10s %s\n", "File:", m.Path)
	if !m.Created.IsZero() {
		fmt.Fprintf(stdout, "  %-10s %s\n", "Created:", m.Created.Local().Format("2006-01-02 15:04:05"))
	}

	types, version, err := manifest.Parse(m.XML)
	if err != nil {
		printWarn("", err.Error())
	} else {
		fmt.Fprintf(stdout, "  %-10s %s\n", "API:", version)
		for _, typ := range types.Types() {
			printBullet(typ)
			fmt.Fprintf(stdout, "  %s\n", strings.Join(types.Members(typ), ", "))
		}
	}

	printBullet(fmt.Sprintf("Selection (%d)", len(m.Selections)))
	if len(m.Selections) == 0 {
		printSkip("", "none recorded")
		return nil
	}
	_, missing := a.named.Revalidate(m.Selections)
	gone := make(map[string]bool, len(missing))
	for _, p := range missing {
		gone[p] = true
	}
	for _, p := range m.Selections {
		if gone[p] {
			printMiss("", a.display(p))
		} else {
			printOK("", a.display(p))
		}
	}
	return nil
}
