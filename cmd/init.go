package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/sfd-cli/internal/config"
	"github.com/kamusis/sfd-cli/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sf-deployer/ with a default sfd.yaml and .env template",
	Long: `Initialize sfd for the current project.

Creates <project>/.sf-deployer/ and writes sfd.yaml and .env there when they
do not exist yet. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	layout, err := project.Resolve(flagProject)
	if err != nil {
		return err
	}

	// ── 1. State directory ────────────────────────────────────────────────────
	dir := layout.StateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("State directory ready: %s", dir))

	// ── 2. sfd.yaml ───────────────────────────────────────────────────────────
	cfgPath := config.Path(layout)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.Save(layout, config.DefaultConfig()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. .env template ──────────────────────────────────────────────────────
	created, err := config.EnsureDotEnvTemplate(layout)
	if err != nil {
		return err
	}
	if created {
		printOK("", fmt.Sprintf(".env template written: %s", config.DotEnvPath(layout)))
	} else {
		printSkip("", fmt.Sprintf(".env already exists: %s", config.DotEnvPath(layout)))
	}

	// ── 4. Validate what is now on disk ───────────────────────────────────────
	if _, err := config.Load(layout); err != nil {
		return err
	}
	if _, err := os.Stat(layout.Abs(project.MarkerFile)); os.IsNotExist(err) {
		printWarn("", fmt.Sprintf("%s not found in %s; paths resolve against this directory", project.MarkerFile, layout.Root))
	}

	fmt.Fprintln(stdout, "\n✓  sfd init complete. Run 'sfd select add <path>' to start a selection.")
	return nil
}
