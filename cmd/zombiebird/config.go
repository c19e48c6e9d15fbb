package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/zombiebird/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the world configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective world config as YAML",
	Long: `Print the world config that 'play' would use, after applying the
search order: --config, ~/.zombiebird/configs/flappy.yaml,
./configs/flappy.yaml, built-in defaults.

Examples:
  zombiebird config dump
  zombiebird config dump --defaults > ~/.zombiebird/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfigDump,
}

func init() {
	configDumpCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults with comments")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fatalf("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
