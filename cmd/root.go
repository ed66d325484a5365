package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "sfd",
	Short:         "SF Deployer: build package.xml manifests from selected Salesforce source",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // Execute prints errors with the icon helpers
	Long: `sfd turns a selection of files and folders in an sfdx project into a
package.xml deployment manifest, and keeps named snapshots of selections
under <project>/.sf-deployer/.`,
}

var (
	flagProject   string
	flagLogLevel  string
	flagLogFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "Project root (default: $SFD_PROJECT_ROOT or nearest sfdx-project.json)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides sfd.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: pretty or json (overrides sfd.yaml)")
}

// Execute is called by main.go.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printErr("", err.Error())
		return 1
	}
	return 0
}
