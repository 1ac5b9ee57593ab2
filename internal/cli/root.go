package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "panelpatch [dashboard...]",
		Short: "Append latency percentile panels to Grafana dashboards",
		Long: `panelpatch appends a percentile time-series chart (p50, p75, p90, p95, p99)
and one stat panel per percentile to Grafana dashboard JSON files.

New panels are placed below the lowest existing panel and get ids above the
highest existing id. Existing panels are left exactly as they are.

Run with no arguments to patch the k6 dashboards under grafana/dashboards/.
Running twice appends the panels twice unless --skip-existing is set.`,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE:         RunPatch,
	}
	addPatchFlags(rootCmd)

	patchCmd := &cobra.Command{
		Use:   "patch [dashboard...]",
		Short: "Append percentile panels to dashboards (default command)",
		Args:  cobra.ArbitraryArgs,
		RunE:  RunPatch,
	}
	addPatchFlags(patchCmd)

	planCmd := &cobra.Command{
		Use:   "plan [dashboard...]",
		Short: "Show where the panels would go without changing any file",
		Args:  cobra.ArbitraryArgs,
		RunE:  RunPlan,
	}
	addCommonFlags(planCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("panelpatch %s\n", version)
		},
	}

	rootCmd.AddCommand(
		patchCmd,
		planCmd,
		versionCmd,
	)

	return rootCmd
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "Dashboards directory (default: grafana/dashboards)")
	cmd.Flags().String("config", "", "Config file (.toml, .yaml); default: panelpatch.toml|yaml in the working directory")
	cmd.Flags().Bool("skip-existing", false, "Leave dashboards that already have the percentile chart unchanged")
	cmd.Flags().Bool("json", false, "Print machine-readable run summary")
	cmd.Flags().String("log-level", "", "Log level: debug|info|warn|error (default: info)")
}

func addPatchFlags(cmd *cobra.Command) {
	addCommonFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Print a diff of the changes instead of writing files")
}
