package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/txfs/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample txfs configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/txfs/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  txfs init

  # Initialize with custom path
  txfs init --config /etc/txfs/config.yaml

  # Force overwrite existing config
  txfs init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to pick a storage backend")
	fmt.Println("  2. Check the backend with: txfs status")
	fmt.Println("  3. Run a staged batch walkthrough with: txfs demo")

	return nil
}
