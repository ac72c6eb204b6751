// Package fraud extracts risk features from UPI IDs and scores them
// through a pluggable model. The model itself is external; the checker
// degrades to unavailable when none is configured.
package fraud

import (
	"strings"
	"time"
	"unicode"
)

// legitimateDomains lists handles operated by known payment providers.
var legitimateDomains = map[string]bool{
	"paytm":      true,
	"phonepe":    true,
	"gpay":       true,
	"amazonpay":  true,
	"ybl":        true,
	"okaxis":     true,
	"okicici":    true,
	"okhdfcbank": true,
}

// Features is one extracted observation of a UPI ID at a point in time.
type Features struct {
	UPIIDLength          int  `json:"upi_id_length"`
	UsernameLength       int  `json:"username_length"`
	DomainLength         int  `json:"domain_length"`
	IsLegitimateDomain   bool `json:"is_legitimate_domain"`
	HasNumbersInUsername bool `json:"has_numbers_in_username"`
	HasSpecialChars      bool `json:"has_special_chars"`
	TransactionHour      int  `json:"transaction_hour"`
	IsNightTime          bool `json:"is_night_time"`
	IsBusinessHours      bool `json:"is_business_hours"`
}

// ExtractFeatures builds the feature vector for a UPI ID, using now for
// the time-of-day signals. IDs without an '@' keep zeroed handle features.
func ExtractFeatures(upiID string, now time.Time) Features {
	f := Features{UPIIDLength: len(upiID)}

	if at := strings.Index(upiID, "@"); at >= 0 {
		username, domain := upiID[:at], upiID[at+1:]
		f.UsernameLength = len(username)
		f.DomainLength = len(domain)
		f.IsLegitimateDomain = legitimateDomains[strings.ToLower(domain)]
		f.HasNumbersInUsername = strings.ContainsFunc(username, unicode.IsDigit)
		f.HasSpecialChars = strings.ContainsAny(username, ".-_")
	}

	hour := now.Hour()
	f.TransactionHour = hour
	f.IsNightTime = hour >= 22 || hour <= 6
	f.IsBusinessHours = hour >= 9 && hour <= 17
	return f
}

// Vector flattens the features into the ordered float slice a scorer
// consumes.
func (f Features) Vector() []float32 {
	b2f := func(b bool) float32 {
		if b {
			return 1
		}
		return 0
	}
	return []float32{
		float32(f.UPIIDLength),
		float32(f.UsernameLength),
		float32(f.DomainLength),
		b2f(f.IsLegitimateDomain),
		b2f(f.HasNumbersInUsername),
		b2f(f.HasSpecialChars),
		float32(f.TransactionHour),
		b2f(f.IsNightTime),
		b2f(f.IsBusinessHours),
	}
}
