package domain

import "strings"

// Submission is a report request for one of the products.
// Validate is purely local; Body returns the canonical JSON request body
// with defaults applied.
type Submission interface {
	Product() Product
	Tier() Tier
	IsRerun() bool
	Fields() map[string]string
	Validate() error
	Body() any
}

// Ensure the request types implement Submission.
var (
	_ Submission = SignalRequest{}
	_ Submission = ScanRequest{}
	_ Submission = SolutionsRequest{}
	_ Submission = SignalRerunRequest{}
	_ Submission = ScanRerunRequest{}
)

// SignalRequest orders an AI visibility test.
type SignalRequest struct {
	URL               string `json:"url"`
	BrandName         string `json:"brand_name"`
	Email             string `json:"email"`
	Industry          string `json:"industry"`
	Location          string `json:"location"`
	Persona           string `json:"persona"`
	PainPoints        string `json:"pain_points"`
	BrandDetails      string `json:"brand_details"`
	DirectCompetitors string `json:"direct_competitors"`

	IndirectCompetitors string `json:"indirect_competitors,omitempty"`
	Keywords            string `json:"keywords,omitempty"`
	ProductDescription  string `json:"product,omitempty"`

	// BusinessScale is small, medium or large. The service defaults to medium.
	BusinessScale string `json:"business_scale,omitempty"`

	// TierLevel is basic (1 credit) or pro (2 credits). Empty means basic.
	TierLevel  Tier   `json:"tier"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

// Product returns ProductSignal.
func (r SignalRequest) Product() Product { return ProductSignal }

// Tier returns the requested tier with the default applied.
func (r SignalRequest) Tier() Tier { return r.TierLevel.orDefault() }

// IsRerun returns false.
func (r SignalRequest) IsRerun() bool { return false }

// Fields returns the non-empty string fields by wire name.
func (r SignalRequest) Fields() map[string]string {
	return fieldSet(
		"url", r.URL,
		"brand_name", r.BrandName,
		"email", r.Email,
		"industry", r.Industry,
		"location", r.Location,
		"persona", r.Persona,
		"pain_points", r.PainPoints,
		"brand_details", r.BrandDetails,
		"direct_competitors", r.DirectCompetitors,
		"indirect_competitors", r.IndirectCompetitors,
		"keywords", r.Keywords,
		"product", r.ProductDescription,
		"business_scale", r.BusinessScale,
		"webhook_url", r.WebhookURL,
	)
}

// Validate checks required fields, lengths, tier and URLs.
func (r SignalRequest) Validate() error {
	fields := r.Fields()
	if err := RequireFields(fields,
		"url", "brand_name", "email", "industry", "location",
		"persona", "pain_points", "brand_details", "direct_competitors",
	); err != nil {
		return err
	}
	if err := ValidateLengths(fields); err != nil {
		return err
	}
	if err := validateTier(ProductSignal, r.TierLevel); err != nil {
		return err
	}
	if err := validateBusinessScale(r.BusinessScale); err != nil {
		return err
	}
	if err := validateWebURL("url", r.URL); err != nil {
		return err
	}
	return validateWebhookURL(r.WebhookURL)
}

// Body returns the request body with the default tier applied.
func (r SignalRequest) Body() any {
	r.TierLevel = r.Tier()
	return r
}

// ScanRequest orders an SEO audit.
type ScanRequest struct {
	URL       string `json:"url"`
	BrandName string `json:"brand_name"`
	Email     string `json:"email"`

	// TierLevel is basic (1 credit) or premium (2 credits). Empty means basic.
	TierLevel Tier `json:"tier"`

	CompetitorURLs []string `json:"competitor_urls,omitempty"`

	// ReportStyle is executive, technical or comprehensive.
	ReportStyle string `json:"report_style,omitempty"`
	WebhookURL  string `json:"webhook_url,omitempty"`
}

// Product returns ProductScan.
func (r ScanRequest) Product() Product { return ProductScan }

// Tier returns the requested tier with the default applied.
func (r ScanRequest) Tier() Tier { return r.TierLevel.orDefault() }

// IsRerun returns false.
func (r ScanRequest) IsRerun() bool { return false }

// Fields returns the non-empty string fields by wire name.
func (r ScanRequest) Fields() map[string]string {
	return fieldSet(
		"url", r.URL,
		"brand_name", r.BrandName,
		"email", r.Email,
		"report_style", r.ReportStyle,
		"webhook_url", r.WebhookURL,
	)
}

// Validate checks required fields, lengths, tier and URLs.
func (r ScanRequest) Validate() error {
	fields := r.Fields()
	if err := RequireFields(fields, "url", "brand_name", "email"); err != nil {
		return err
	}
	if err := ValidateLengths(fields); err != nil {
		return err
	}
	if err := validateTier(ProductScan, r.TierLevel); err != nil {
		return err
	}
	switch r.ReportStyle {
	case "", "executive", "technical", "comprehensive":
	default:
		return NewValidationError("report_style", "report_style must be executive, technical or comprehensive")
	}
	if err := validateWebURL("url", r.URL); err != nil {
		return err
	}
	for _, competitor := range r.CompetitorURLs {
		if err := validateWebURL("competitor_urls", competitor); err != nil {
			return err
		}
	}
	return validateWebhookURL(r.WebhookURL)
}

// Body returns the request body with the default tier applied.
func (r ScanRequest) Body() any {
	r.TierLevel = r.Tier()
	return r
}

// SignalRerunRequest reruns Signal against a brand (and optionally a persona)
// already configured on the server.
type SignalRerunRequest struct {
	BrandSlug   string `json:"brand_slug"`
	PersonaSlug string `json:"persona_slug,omitempty"`
	Email       string `json:"email"`
	TierLevel   Tier   `json:"tier"`
	WebhookURL  string `json:"webhook_url,omitempty"`
}

// Product returns ProductSignal.
func (r SignalRerunRequest) Product() Product { return ProductSignal }

// Tier returns the requested tier with the default applied.
func (r SignalRerunRequest) Tier() Tier { return r.TierLevel.orDefault() }

// IsRerun returns true.
func (r SignalRerunRequest) IsRerun() bool { return true }

// Fields returns the non-empty string fields by wire name.
func (r SignalRerunRequest) Fields() map[string]string {
	return fieldSet(
		"brand_slug", r.BrandSlug,
		"persona_slug", r.PersonaSlug,
		"email", r.Email,
		"webhook_url", r.WebhookURL,
	)
}

// Validate checks required fields, tier and webhook URL.
func (r SignalRerunRequest) Validate() error {
	if err := RequireFields(r.Fields(), "brand_slug", "email"); err != nil {
		return err
	}
	if err := validateTier(ProductSignal, r.TierLevel); err != nil {
		return err
	}
	return validateWebhookURL(r.WebhookURL)
}

// Body returns the request body with the default tier applied.
func (r SignalRerunRequest) Body() any {
	r.TierLevel = r.Tier()
	return r
}

// ScanRerunRequest reruns Scan against a brand's stored website configuration.
type ScanRerunRequest struct {
	BrandSlug  string `json:"brand_slug"`
	Email      string `json:"email"`
	TierLevel  Tier   `json:"tier"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

// Product returns ProductScan.
func (r ScanRerunRequest) Product() Product { return ProductScan }

// Tier returns the requested tier with the default applied.
func (r ScanRerunRequest) Tier() Tier { return r.TierLevel.orDefault() }

// IsRerun returns true.
func (r ScanRerunRequest) IsRerun() bool { return true }

// Fields returns the non-empty string fields by wire name.
func (r ScanRerunRequest) Fields() map[string]string {
	return fieldSet(
		"brand_slug", r.BrandSlug,
		"email", r.Email,
		"webhook_url", r.WebhookURL,
	)
}

// Validate checks required fields, tier and webhook URL.
func (r ScanRerunRequest) Validate() error {
	if err := RequireFields(r.Fields(), "brand_slug", "email"); err != nil {
		return err
	}
	if err := validateTier(ProductScan, r.TierLevel); err != nil {
		return err
	}
	return validateWebhookURL(r.WebhookURL)
}

// Body returns the request body with the default tier applied.
func (r ScanRerunRequest) Body() any {
	r.TierLevel = r.Tier()
	return r
}

func validateBusinessScale(scale string) error {
	switch strings.ToLower(scale) {
	case "", "small", "medium", "large":
		return nil
	default:
		return NewValidationError("business_scale", "business_scale must be small, medium or large")
	}
}
