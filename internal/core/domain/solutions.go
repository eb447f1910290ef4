package domain

import "fmt"

// SolutionsMode selects where a Solutions report gets its business context.
// It is a closed set: SignalTokenMode or StandaloneMode.
type SolutionsMode interface {
	solutionsMode()
	fields() map[string]string
	validate() error
}

// SignalTokenMode chains Solutions to a previous Signal report, which
// carries the brand context forward.
type SignalTokenMode struct {
	Token string

	// BrandName optionally overrides the brand name from the Signal report.
	BrandName string
}

func (SignalTokenMode) solutionsMode() {}

func (m SignalTokenMode) fields() map[string]string {
	return fieldSet("signal_token", m.Token, "brand_name", m.BrandName)
}

func (m SignalTokenMode) validate() error {
	return RequireFields(m.fields(), "signal_token")
}

// StandaloneMode supplies the full business context directly.
type StandaloneMode struct {
	BrandName      string
	BusinessStory  string
	Decision       string
	Success        string
	Timeline       string
	ScaleIndicator string
}

func (StandaloneMode) solutionsMode() {}

func (m StandaloneMode) fields() map[string]string {
	return fieldSet(
		"brand_name", m.BrandName,
		"business_story", m.BusinessStory,
		"decision", m.Decision,
		"success", m.Success,
		"timeline", m.Timeline,
		"scale_indicator", m.ScaleIndicator,
	)
}

func (m StandaloneMode) validate() error {
	return RequireFields(m.fields(), standaloneFields...)
}

// standaloneFields are required in standalone mode.
var standaloneFields = []string{
	"brand_name", "business_story", "decision", "success", "timeline", "scale_indicator",
}

// FinancialAnalysis adds the optional financial block to either mode.
type FinancialAnalysis struct {
	FinancialContext string
	MonthlyRevenue   string
	MonthlyCosts     string
	CashAvailable    string
}

func (f *FinancialAnalysis) fields() map[string]string {
	if f == nil {
		return nil
	}
	return fieldSet(
		"financial_context", f.FinancialContext,
		"monthly_revenue", f.MonthlyRevenue,
		"monthly_costs", f.MonthlyCosts,
		"cash_available", f.CashAvailable,
	)
}

// SolutionsRequest orders a strategic advisory report. Solutions is always
// billed at the pro tier.
type SolutionsRequest struct {
	Email string
	Mode  SolutionsMode

	// ScanToken optionally adds SEO context from a previous Scan report.
	ScanToken string

	// Financial enables the financial analysis section when non-nil.
	Financial *FinancialAnalysis

	WebhookURL string
}

// solutionsBody is the wire form of SolutionsRequest.
type solutionsBody struct {
	Email            string `json:"email"`
	SignalToken      string `json:"signal_token,omitempty"`
	ScanToken        string `json:"scan_token,omitempty"`
	BrandName        string `json:"brand_name,omitempty"`
	BusinessStory    string `json:"business_story,omitempty"`
	Decision         string `json:"decision,omitempty"`
	Success          string `json:"success,omitempty"`
	Timeline         string `json:"timeline,omitempty"`
	ScaleIndicator   string `json:"scale_indicator,omitempty"`
	IncludeFinancial string `json:"include_financial,omitempty"`
	FinancialContext string `json:"financial_context,omitempty"`
	MonthlyRevenue   string `json:"monthly_revenue,omitempty"`
	MonthlyCosts     string `json:"monthly_costs,omitempty"`
	CashAvailable    string `json:"cash_available,omitempty"`
	WebhookURL       string `json:"webhook_url,omitempty"`
}

// Product returns ProductSolutions.
func (r SolutionsRequest) Product() Product { return ProductSolutions }

// Tier returns TierPro.
func (r SolutionsRequest) Tier() Tier { return TierPro }

// IsRerun returns false.
func (r SolutionsRequest) IsRerun() bool { return false }

// Fields returns the non-empty string fields by wire name.
func (r SolutionsRequest) Fields() map[string]string {
	fields := fieldSet("email", r.Email, "scan_token", r.ScanToken, "webhook_url", r.WebhookURL)
	if r.Mode != nil {
		for k, v := range r.Mode.fields() {
			fields[k] = v
		}
	}
	for k, v := range r.Financial.fields() {
		fields[k] = v
	}
	return fields
}

// Validate checks email, the mode's required fields, lengths and webhook URL.
func (r SolutionsRequest) Validate() error {
	fields := r.Fields()
	if err := RequireFields(fields, "email"); err != nil {
		return err
	}
	if r.Mode == nil {
		return NewValidationError("signal_token",
			"solutions needs either signal_token or the standalone fields: "+joinFields(standaloneFields))
	}
	if err := r.Mode.validate(); err != nil {
		return err
	}
	if err := ValidateLengths(fields); err != nil {
		return err
	}
	return validateWebhookURL(r.WebhookURL)
}

// Body returns the flattened wire body.
func (r SolutionsRequest) Body() any {
	f := r.Fields()
	body := solutionsBody{
		Email:            f["email"],
		SignalToken:      f["signal_token"],
		ScanToken:        f["scan_token"],
		BrandName:        f["brand_name"],
		BusinessStory:    f["business_story"],
		Decision:         f["decision"],
		Success:          f["success"],
		Timeline:         f["timeline"],
		ScaleIndicator:   f["scale_indicator"],
		FinancialContext: f["financial_context"],
		MonthlyRevenue:   f["monthly_revenue"],
		MonthlyCosts:     f["monthly_costs"],
		CashAvailable:    f["cash_available"],
		WebhookURL:       f["webhook_url"],
	}
	if r.Financial != nil {
		body.IncludeFinancial = "yes"
	}
	return body
}

// SolutionsFields is the flat, mode-less form of a Solutions request as it
// arrives from CLI flags or tool arguments.
type SolutionsFields struct {
	Email          string
	SignalToken    string
	ScanToken      string
	BrandName      string
	BusinessStory  string
	Decision       string
	Success        string
	Timeline       string
	ScaleIndicator string

	IncludeFinancial bool
	FinancialContext string
	MonthlyRevenue   string
	MonthlyCosts     string
	CashAvailable    string

	WebhookURL string
}

// InferSolutionsMode picks the mode from which fields are present.
// A signal token combined with any standalone-only field is ambiguous.
func InferSolutionsMode(f SolutionsFields) (SolutionsMode, error) {
	standalone := fieldSet(
		"business_story", f.BusinessStory,
		"decision", f.Decision,
		"success", f.Success,
		"timeline", f.Timeline,
		"scale_indicator", f.ScaleIndicator,
	)

	if !isBlank(f.SignalToken) {
		if len(standalone) > 0 {
			return nil, &Error{
				Kind:  KindValidation,
				Field: "signal_token",
				Message: fmt.Sprintf(
					"signal_token cannot be combined with standalone fields (%s); pick one mode",
					joinFields(sortedKeys(standalone))),
				Cause: ErrAmbiguousMode,
			}
		}
		return SignalTokenMode{Token: f.SignalToken, BrandName: f.BrandName}, nil
	}

	mode := StandaloneMode{
		BrandName:      f.BrandName,
		BusinessStory:  f.BusinessStory,
		Decision:       f.Decision,
		Success:        f.Success,
		Timeline:       f.Timeline,
		ScaleIndicator: f.ScaleIndicator,
	}
	if err := mode.validate(); err != nil {
		e, _ := AsError(err)
		e.Message = "without signal_token, these fields are required: " + joinFields(standaloneFields)
		return nil, e
	}
	return mode, nil
}

// NewSolutionsRequest converts flat fields into a SolutionsRequest.
func NewSolutionsRequest(f SolutionsFields) (SolutionsRequest, error) {
	mode, err := InferSolutionsMode(f)
	if err != nil {
		return SolutionsRequest{}, err
	}

	req := SolutionsRequest{
		Email:      f.Email,
		Mode:       mode,
		ScanToken:  f.ScanToken,
		WebhookURL: f.WebhookURL,
	}
	financial := &FinancialAnalysis{
		FinancialContext: f.FinancialContext,
		MonthlyRevenue:   f.MonthlyRevenue,
		MonthlyCosts:     f.MonthlyCosts,
		CashAvailable:    f.CashAvailable,
	}
	if f.IncludeFinancial || len(financial.fields()) > 0 {
		req.Financial = financial
	}
	return req, nil
}
