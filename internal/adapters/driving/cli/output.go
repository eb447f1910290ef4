package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/core/domain"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printHandle(cmd *cobra.Command, h *domain.ReportHandle) error {
	if jsonOutput {
		return printJSON(cmd, h)
	}

	cmd.Printf("Submitted %s report %s\n", h.Product, h.ReportID)
	cmd.Printf("  Status:  %s\n", h.Status)
	cmd.Printf("  Credits: %d\n", h.CreditsUsed)
	if h.Token != "" {
		cmd.Printf("  Token:   %s\n", h.Token)
	}
	if h.BrandSlug != "" {
		cmd.Printf("  Brand:   %s\n", h.BrandSlug)
	}
	cmd.Println()
	cmd.Printf("Track it with: surmado report wait %s\n", h.ReportID)
	return nil
}

func printReport(cmd *cobra.Command, r *domain.Report) error {
	if jsonOutput {
		return printJSON(cmd, r)
	}

	cmd.Printf("Report %s\n", r.ReportID)
	cmd.Printf("  Product: %s\n", r.Product)
	if r.Tier != "" {
		cmd.Printf("  Tier:    %s\n", r.Tier)
	}
	cmd.Printf("  Status:  %s\n", r.Status)
	if r.BrandSlug != "" {
		cmd.Printf("  Brand:   %s\n", r.BrandSlug)
	}
	if r.Token != "" {
		cmd.Printf("  Token:   %s\n", r.Token)
	}

	switch r.Status {
	case domain.StatusFailed, domain.StatusCancelled:
		cmd.Printf("  Reason:  %s\n", r.Reason())
	case domain.StatusCompleted:
		printDownloads(cmd, r)
	}

	if len(r.Summary) > 0 {
		cmd.Println()
		cmd.Println("Summary:")
		keys := make([]string, 0, len(r.Summary))
		for k := range r.Summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("  %s: %v\n", k, r.Summary[k])
		}
	}
	return nil
}

func printDownloads(cmd *cobra.Command, r *domain.Report) {
	if r.DownloadURL == "" {
		return
	}
	cmd.Println()
	cmd.Println("Downloads:")
	cmd.Printf("  PDF:        %s\n", r.DownloadURL)
	if r.PPTXDownloadURL != "" {
		cmd.Printf("  PowerPoint: %s\n", r.PPTXDownloadURL)
	}
	if r.IntelligenceDownloadURL != "" {
		cmd.Printf("  Data:       %s\n", r.IntelligenceDownloadURL)
	}
	if !r.FetchedAt.IsZero() {
		cmd.Printf("Links expire at %s. Run 'surmado report get %s' for fresh ones.\n",
			r.DownloadsExpireAt().Local().Format(time.Kitchen), r.ReportID)
	}
}

func printHistory(cmd *cobra.Command, entries []domain.LedgerEntry) error {
	if jsonOutput {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		cmd.Println("No reports submitted from this machine yet.")
		return nil
	}

	cmd.Printf("%-24s %-16s %-8s %-12s %-24s %s\n", "REPORT", "PRODUCT", "TIER", "STATUS", "BRAND", "SUBMITTED")
	for i := range entries {
		e := &entries[i]
		brand := e.BrandName
		if brand == "" {
			brand = e.BrandSlug
		}
		product := string(e.Product)
		if e.Rerun {
			product += " (rerun)"
		}
		cmd.Printf("%-24s %-16s %-8s %-12s %-24s %s\n",
			e.ReportID, product, e.Tier, e.LastStatus, truncate(brand, 24), e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
