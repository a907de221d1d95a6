package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/insightloom-cli/internal/config"
	"github.com/KaramelBytes/insightloom-cli/internal/export"
	"github.com/KaramelBytes/insightloom-cli/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set InsightLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := validateSetting(key, val); err != nil {
			return err
		}
		if err := c.Set(key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

// validateSetting checks enum-valued keys before they are persisted.
func validateSetting(key, val string) error {
	var err error
	switch key {
	case "department":
		_, err = analysis.ParseDepartment(val)
	case "analysis_focus":
		_, err = analysis.ParseFocus(val)
	case "output_format":
		_, err = export.ParseFormat(val)
	case "delimiter":
		_, err = parseDelimiter(val)
	case "decimal_separator":
		_, err = parseDecimal(val)
	case "thousands_separator":
		_, err = parseThousands(val)
	case "log_level":
		_, err = logging.ParseLevel(val)
	case "log_format":
		if val != "text" && val != "json" {
			err = fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
