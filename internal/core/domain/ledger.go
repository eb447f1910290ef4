package domain

import "time"

// LedgerEntry is the local record of an accepted submission. It never holds
// download URLs, which expire shortly after they are issued.
type LedgerEntry struct {
	ReportID    string
	Token       string
	Product     Product
	Tier        Tier
	Rerun       bool
	BrandSlug   string
	BrandName   string
	CreditsUsed int
	LastStatus  Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLedgerEntry builds an entry from a submission and its accepted handle.
func NewLedgerEntry(sub Submission, handle *ReportHandle, now time.Time) LedgerEntry {
	entry := LedgerEntry{
		ReportID:    handle.ReportID,
		Token:       handle.Token,
		Product:     handle.Product,
		Tier:        sub.Tier(),
		Rerun:       sub.IsRerun(),
		BrandSlug:   handle.BrandSlug,
		BrandName:   sub.Fields()["brand_name"],
		CreditsUsed: handle.CreditsUsed,
		LastStatus:  handle.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if entry.Product == "" {
		entry.Product = sub.Product()
	}
	if entry.BrandSlug == "" {
		entry.BrandSlug = sub.Fields()["brand_slug"]
	}
	if created, ok := handle.Created(); ok {
		entry.CreatedAt = created
	}
	return entry
}
