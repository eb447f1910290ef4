package domain

// Product identifies a Surmado report product.
type Product string

// Available products.
const (
	// ProductSignal is the AI visibility test.
	ProductSignal Product = "signal"

	// ProductScan is the SEO audit.
	ProductScan Product = "scan"

	// ProductSolutions is the strategic advisory report.
	ProductSolutions Product = "solutions"
)

// IsValid returns true if the product is recognised.
func (p Product) IsValid() bool {
	switch p {
	case ProductSignal, ProductScan, ProductSolutions:
		return true
	default:
		return false
	}
}

// Tiers returns the tiers a product can be ordered at.
func (p Product) Tiers() []Tier {
	switch p {
	case ProductSignal:
		return []Tier{TierBasic, TierPro}
	case ProductScan:
		return []Tier{TierBasic, TierPremium}
	case ProductSolutions:
		return []Tier{TierPro}
	default:
		return nil
	}
}

// AcceptsTier reports whether t is a valid tier for the product.
func (p Product) AcceptsTier(t Tier) bool {
	for _, allowed := range p.Tiers() {
		if allowed == t {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (p Product) String() string {
	return string(p)
}

// Tier is the pricing level of a report.
type Tier string

// Available tiers.
const (
	TierBasic   Tier = "basic"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Credits returns how many credits a report at this tier consumes.
func (t Tier) Credits() int {
	switch t {
	case TierPro, TierPremium:
		return 2
	case TierBasic:
		return 1
	default:
		return 0
	}
}

// String returns the string representation.
func (t Tier) String() string {
	return string(t)
}

// orDefault returns TierBasic for the zero tier.
func (t Tier) orDefault() Tier {
	if t == "" {
		return TierBasic
	}
	return t
}

// Status is the server-side lifecycle state of a report.
type Status string

// Report states. Transitions happen server-side only:
// queued -> processing -> completed | failed.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// IsTerminal returns true once the report can no longer change state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}
