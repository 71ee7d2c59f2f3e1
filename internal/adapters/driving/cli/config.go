package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
	Long: `View and change the client configuration file.

Each setting is resolved from its environment variable, then the config
file, then the built-in default. The backend URL also honours
NEXT_PUBLIC_API_URL.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show effective settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Write a setting to the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// effectiveValue returns the resolved value of key.
func effectiveValue(s domain.ClientSettings, key string) (any, bool) {
	switch key {
	case domain.KeyAPIURL:
		return s.APIURL, true
	case domain.KeyAPITimeoutSeconds:
		return int(s.Timeout.Seconds()), true
	case domain.KeyAPIRequestsPerSecond:
		return s.RequestsPerSecond, true
	case domain.KeyHistoryConcurrency:
		return s.HistoryConcurrency, true
	case domain.KeyHistoryLimit:
		return s.HistoryLimit, true
	case domain.KeySearchTopK:
		return s.SearchTopK, true
	case domain.KeyRAGTopK:
		return s.RAGTopK, true
	}
	return nil, false
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	resolved := settingsService.Resolve()
	keys := settingsService.Keys()
	if len(args) == 1 {
		keys = args
	}

	values := make(map[string]any, len(keys))
	for _, key := range keys {
		v, ok := effectiveValue(resolved, key)
		if !ok {
			return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
		}
		values[key] = v
	}

	return render(cmd, values, func() {
		if len(args) == 1 {
			cmd.Println(values[args[0]])
			return
		}
		for _, key := range keys {
			source := "default"
			if _, ok := settingsService.Get(key); ok {
				source = "config"
			}
			cmd.Printf("%-26s %-28v (%s, env %s)\n", key, values[key], source, services.EnvVar(key))
		}
	})
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}
