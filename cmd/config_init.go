package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stellar-voice/leads-console/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage console configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.yaml with default values",
	// Runs before config loading so it works on a fresh machine.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		const path = "config.yaml"
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return eris.New("config init: config.yaml already exists, use --force to overwrite")
		}

		defaults := map[string]any{}
		for key, value := range config.Defaults() {
			nestDefault(defaults, key, value)
		}

		data, err := yaml.Marshal(defaults)
		if err != nil {
			return eris.Wrap(err, "config init")
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return eris.Wrap(err, "config init")
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

// nestDefault expands a dotted viper key into nested YAML maps.
func nestDefault(root map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	node := root
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
