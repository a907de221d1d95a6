package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
	"github.com/KaramelBytes/insightloom-cli/internal/export"
	"github.com/KaramelBytes/insightloom-cli/internal/format"
)

var listCmd = &cobra.Command{
	Use:       "list <departments|focus|formats|readers>",
	Short:     "List accepted departments, analysis focus values, report formats or input readers",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"departments", "focus", "formats", "readers"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "departments":
			t := format.NewTable(format.ASCII)
			t.Header("Department", "Label", "Rule-specific insights")
			for _, d := range analysis.Departments() {
				t.Row(d, d.Label(), format.Mark(analysis.HasDepartmentInsights(d)))
			}
			fmt.Fprintln(out, t.String())
		case "focus":
			for _, f := range analysis.Foci() {
				fmt.Fprintf(out, "- %s\n", f)
			}
		case "formats":
			for _, f := range export.Formats() {
				fmt.Fprintf(out, "- %s (.%s)\n", f, f.Ext())
			}
		case "readers":
			for _, r := range dataset.Formats() {
				fmt.Fprintf(out, "- %s\n", r)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
