package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/types"
)

// Flag values lose to viper config only when the flag was not set on
// the command line.

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if configured := viper.GetString(key); configured != "" {
		return configured
	}
	return value
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	if configured := viper.GetStringSlice(key); len(configured) > 0 {
		return configured
	}
	return values
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}

// parseDependencyType maps the --type flag to the internal enum,
// defaulting to pip.
func parseDependencyType(value string) types.DependencyType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "apt":
		return types.DependencyTypeApt
	default:
		return types.DependencyTypePip
	}
}
