package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/adapters/driving/webhook"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/logger"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Webhook receiver commands",
}

var (
	webhookAddr string
	webhookPath string
)

var webhookListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive report notifications locally",
	Long: `Start a local HTTP server that accepts Surmado webhook notifications,
prints each event and updates the local history.

Surmado only delivers to https URLs, so expose the receiver through a
tunnel and pass the tunnel URL as --webhook-url when submitting.

Example:
  surmado webhook listen --addr 127.0.0.1:8787
  surmado scan ... --webhook-url https://<tunnel-host>/webhook`,
	Args: cobra.NoArgs,
	RunE: runWebhookListen,
}

func init() {
	webhookListenCmd.Flags().StringVar(&webhookAddr, "addr", "127.0.0.1:8787", "listen address")
	webhookListenCmd.Flags().StringVar(&webhookPath, "path", webhook.DefaultPath, "request path")
	webhookCmd.AddCommand(webhookListenCmd)
	rootCmd.AddCommand(webhookCmd)
}

func runWebhookListen(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	receiver := webhook.NewReceiver(webhookAddr, webhookPath, func(ctx context.Context, event *domain.WebhookEvent) error {
		if err := reports.RecordEvent(ctx, event); err != nil {
			logger.Warn("failed to record webhook event for %s: %v", event.Report.ID, err)
			return err
		}
		printEvent(cmd, event)
		return nil
	})

	if err := receiver.Start(); err != nil {
		return err
	}
	cmd.Printf("Listening for webhooks on %s\n", receiver.URL())
	cmd.Println("Press Ctrl+C to stop.")

	return receiver.Wait(cmd.Context())
}

func printEvent(cmd *cobra.Command, event *domain.WebhookEvent) {
	if jsonOutput {
		_ = printJSON(cmd, event)
		return
	}

	at := time.Now()
	if ts, ok := event.Time(); ok {
		at = ts
	}
	r := &event.Report
	line := at.Local().Format(time.TimeOnly) + " " + string(event.Event) + " " + r.ID
	if r.Product != "" {
		line += " (" + string(r.Product) + ")"
	}
	cmd.Println(line)

	if event.Succeeded() {
		if r.PDFURL != "" {
			cmd.Printf("  PDF:  %s\n", r.PDFURL)
		}
		if r.DataURL != "" {
			cmd.Printf("  Data: %s\n", r.DataURL)
		}
		return
	}
	if r.FailureReason != "" {
		cmd.Printf("  Reason: %s\n", r.FailureReason)
	}
	if r.CreditsRefunded > 0 {
		cmd.Printf("  Refunded %d credits\n", r.CreditsRefunded)
	}
}
