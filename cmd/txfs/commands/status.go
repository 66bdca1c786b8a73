package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/txfs/internal/cli/output"
	"github.com/marmos91/txfs/pkg/config"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage backend status",
	Long: `Display the configured storage backend and check its health.

The backend is opened from the active configuration and probed with a
health check.

Examples:
  # Check the configured backend
  txfs status

  # Output as JSON
  txfs status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// BackendStatus describes the configured backend and its health.
type BackendStatus struct {
	Backend string `json:"backend" yaml:"backend"`
	Config  string `json:"config" yaml:"config"`
	Healthy bool   `json:"healthy" yaml:"healthy"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (s BackendStatus) Headers() []string {
	return []string{"Backend", "Config", "Healthy", "Message"}
}

func (s BackendStatus) Rows() [][]string {
	healthy := "no"
	if s.Healthy {
		healthy = "yes"
	}
	return [][]string{{s.Backend, s.Config, healthy, s.Message}}
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), format, false)

	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	status := BackendStatus{
		Backend: cfg.Store.Type,
		Config:  configSource(GetConfigFile()),
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	store, err := config.NewStore(ctx, cfg.Store)
	if err != nil {
		status.Message = err.Error()
		return printer.Print(status)
	}
	defer store.Close()

	if err := store.HealthCheck(ctx); err != nil {
		status.Message = err.Error()
	} else {
		status.Healthy = true
		status.Message = "backend reachable"
	}

	return printer.Print(status)
}

// configSource describes where the active configuration came from.
func configSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
