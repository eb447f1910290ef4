package domain

import (
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldLimits is the maximum character length of every bounded request field.
// Lengths are counted in Unicode code points.
var FieldLimits = map[string]int{
	"brand_name":           100,
	"industry":             200,
	"location":             200,
	"persona":              800,
	"pain_points":          1000,
	"brand_details":        1200,
	"direct_competitors":   500,
	"indirect_competitors": 500,
	"keywords":             500,
	"product":              1000,
	"business_story":       2000,
	"decision":             1500,
	"success":              1000,
	"timeline":             200,
	"scale_indicator":      100,
	"financial_context":    1000,
	"monthly_revenue":      50,
	"monthly_costs":        50,
	"cash_available":       50,
}

// MaxLength returns the character limit for field, if it has one.
func MaxLength(field string) (int, bool) {
	limit, ok := FieldLimits[field]
	return limit, ok
}

// ValidateLengths checks every present field against FieldLimits.
// Fields are checked in name order so the reported field is deterministic.
func ValidateLengths(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		limit, ok := FieldLimits[name]
		if !ok {
			continue
		}
		if utf8.RuneCountInString(fields[name]) > limit {
			return FieldTooLong(name, limit)
		}
	}
	return nil
}

// RequireFields checks that each named field is present and not blank,
// in the order given.
func RequireFields(fields map[string]string, required ...string) error {
	for _, name := range required {
		if isBlank(fields[name]) {
			return FieldRequired(name)
		}
	}
	return nil
}

// validateTier checks t against the product's tiers. The zero tier is allowed
// and means basic.
func validateTier(p Product, t Tier) error {
	if t == "" || p.AcceptsTier(t) {
		return nil
	}
	allowed := make([]string, 0, 2)
	for _, tier := range p.Tiers() {
		allowed = append(allowed, string(tier))
	}
	return NewValidationError("tier",
		"tier "+string(t)+" is not available for "+string(p)+" (use "+strings.Join(allowed, " or ")+")")
}

// validateWebURL checks that raw is an absolute http or https URL.
func validateWebURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewValidationError(field, field+" must be an absolute http(s) URL")
	}
	return nil
}

// validateWebhookURL checks an optional webhook URL. Delivery requires HTTPS.
func validateWebhookURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme != "https" {
		return NewValidationError("webhook_url", "webhook_url must be an absolute https URL")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// fieldSet builds a field map, dropping empty values.
func fieldSet(pairs ...string) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			m[pairs[i]] = pairs[i+1]
		}
	}
	return m
}

func joinFields(names []string) string {
	return strings.Join(names, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
