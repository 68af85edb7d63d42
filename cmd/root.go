package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stellar-voice/leads-console/internal/config"
	"github.com/stellar-voice/leads-console/pkg/webhook"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leads-console",
	Short: "Admin console for the outbound calling pipeline",
	Long:  "Uploads contact lists, views and edits the lead roster, and toggles call scheduling, all against the n8n automation backend.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newWebhookClient builds the backend client from loaded config.
func newWebhookClient() webhook.Client {
	timeout := time.Duration(cfg.Webhook.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return webhook.NewClient(webhook.Endpoints{
		LeadsURL:  cfg.Webhook.GetLeadsURL,
		UpdateURL: cfg.Webhook.UpdateLeadURL,
		UploadURL: cfg.Webhook.UploadURL,
	}, webhook.WithTimeout(timeout))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
