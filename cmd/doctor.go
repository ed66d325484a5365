package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/sfd-cli/internal/config"
	"github.com/kamusis/sfd-cli/internal/manifest"
	"github.com/kamusis/sfd-cli/internal/project"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project, config, selection and saved manifests",
	Long: `Check that sfd is correctly set up for this project.
Run this command when a build looks wrong, or before filing a bug report.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Drop selected paths that no longer exist",
	Long: `Fix detected issues in the active selection.

Currently fixes:
  - Missing paths: removes them from .sf-deployer/selection.json

Run 'sfd doctor' first to see what will be fixed.`,
	Args: cobra.NoArgs,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return fmt.Errorf("cannot load project: %w\nRun 'sfd init' first.", err)
	}

	printSection("sfd doctor fix")
	fmt.Fprintln(stdout, "\n[ Selection ]")

	var dropped []string
	err = a.selections.Update(func(current []string) []string {
		valid, missing := a.named.Revalidate(current)
		dropped = missing
		return valid
	})
	if err != nil {
		return err
	}
	if len(dropped) == 0 {
		printOK("", "no missing paths, nothing to fix")
		return nil
	}
	for _, p := range dropped {
		printOK("", fmt.Sprintf("dropped %s", a.display(p)))
	}
	fmt.Fprintf(stdout, "\n  ✓  %d missing path(s) removed. Run 'sfd build' to refresh package.xml.\n", len(dropped))
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("sfd doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: project root ─────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Project ]")
	layout, err := project.Resolve(flagProject)
	if err != nil {
		return err
	}
	if _, err := os.Stat(layout.Abs(project.MarkerFile)); err != nil {
		printWarn("", fmt.Sprintf("%s not found; using %s as the root", project.MarkerFile, layout.Root))
	} else {
		printOK("", fmt.Sprintf("sfdx project: %s", layout.Root))
	}
	if _, err := os.Stat(layout.StateDir()); os.IsNotExist(err) {
		printWarn("", fmt.Sprintf("%s does not exist yet (run 'sfd init')", project.StateDirName))
	} else {
		printOK("", fmt.Sprintf("state directory: %s", layout.StateDir()))
	}
	fmt.Fprintln(stdout)

	// ── Check 2: sfd.yaml ─────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ sfd.yaml ]")
	a, loadErr := newApp()
	if loadErr != nil {
		failD("%v", loadErr)
	} else {
		if _, err := os.Stat(config.Path(layout)); os.IsNotExist(err) {
			printSkip("", "no sfd.yaml, using built-in defaults")
		} else {
			printOK("", "valid")
		}
		printInfo("", fmt.Sprintf("api version %s, %d deployable extension(s), %d ignore pattern(s)",
			a.cfg.APIVersion, len(a.cfg.DeployableExtensions), len(a.cfg.Ignore)))
	}
	fmt.Fprintln(stdout)
	if loadErr != nil {
		return doctorSummary(false)
	}

	// ── Check 3: selection ────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Selection ]")
	sel, err := a.selections.Get()
	switch {
	case err != nil:
		failD("%v", err)
	case len(sel) == 0:
		printSkip("", "empty (run 'sfd select add <path>')")
	default:
		_, missing := a.named.Revalidate(sel)
		for _, p := range missing {
			printMiss("", a.display(p))
		}
		if len(missing) > 0 {
			printWarn("", fmt.Sprintf("%d of %d selected path(s) are missing (run 'sfd doctor fix')", len(missing), len(sel)))
			allOK = false
		} else {
			printOK("", fmt.Sprintf("%d path(s), all present", len(sel)))
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 4: package.xml is current ───────────────────────────────────────
	fmt.Fprintln(stdout, "[ package.xml ]")
	onDisk, readErr := os.ReadFile(layout.DefaultManifest())
	switch {
	case os.IsNotExist(readErr):
		printSkip("", "not built yet")
	case readErr != nil:
		failD("%v", readErr)
	case err != nil || len(sel) == 0:
		printSkip("", "present; no selection to compare against")
	default:
		res, err := a.builder.Assemble(cmd.Context(), sel)
		var nre *manifest.NoRecognizedTypesError
		switch {
		case errors.As(err, &nre):
			printWarn("", "selection contains no recognizable metadata")
		case err != nil:
			printWarn("", fmt.Sprintf("cannot rebuild for comparison: %v", err))
		case res.XML != string(onDisk):
			printWarn("", "out of date with the selection (run 'sfd build')")
		default:
			printOK("", "matches the selection")
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 5: named manifests ──────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Named manifests ]")
	names, err := a.named.List()
	if err != nil {
		failD("%v", err)
	}
	if err == nil && len(names) == 0 {
		printSkip("", "none saved")
	}
	for _, n := range names {
		if _, err := a.named.Inspect(n); err != nil {
			failD("[%s] %v", n, err)
			continue
		}
		printOK(n, "OK")
	}
	fmt.Fprintln(stdout)

	return doctorSummary(allOK)
}

func doctorSummary(allOK bool) error {
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, "✓  All checks passed. sfd is ready to use.")
		return nil
	}
	fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}
