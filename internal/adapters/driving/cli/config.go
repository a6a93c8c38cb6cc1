package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := openConfig()
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:         "get <key>",
	Short:       "Print a configuration value",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := openConfig()
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		val, ok := cfg.Get(args[0])
		if !ok {
			return fmt.Errorf("%s is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

Values that parse as booleans or integers are stored as such; anything
else is stored as a string. Durations take Go syntax, e.g. 30m.`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := openConfig()
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		if err := cfg.Set(args[0], parseConfigValue(args[1])); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		cmd.Printf("%s set\n", args[0])
		return nil
	},
}

// parseConfigValue types a command-line value the way TOML would.
func parseConfigValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func init() {
	configCmd.AddCommand(configPathCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
