package dialog

import (
	"regexp"
	"strings"
)

// PII kinds reported by DetectPII.
const (
	PIIKindPhone   = "phone"
	PIIKindEmail   = "email"
	PIIKindAccount = "account_number"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// Indian mobiles (bare 10-digit starting 6-9, optional +91/0 prefix) plus
	// generic international formats.
	phonePattern = regexp.MustCompile(`(\+91[\-\s]?|0)?[6-9]\d{9}\b|\+?\d[\d\-() ]{8,}\d`)
	// Bank account numbers run 9 to 18 digits in this market.
	accountPattern = regexp.MustCompile(`\b\d{9,18}\b`)
)

var investmentAdvicePhrases = []string{
	"which stock", "stock tip", "stock tips", "which share", "share tips",
	"invest in", "investment advice", "which mutual fund", "best mutual fund",
	"guaranteed return", "guaranteed returns", "multibagger", "double my money",
	"should i buy", "should i sell", "crypto", "bitcoin", "trading tip",
	"portfolio pick", "hot stock",
}

// PIIResult is the outcome of scanning one utterance.
type PIIResult struct {
	Detected bool
	Kind     string
}

// DetectPII scans an utterance for phone numbers, email addresses, and bank
// account numbers. Phone wins over account when a token matches both.
func DetectPII(text string) PIIResult {
	if phonePattern.MatchString(text) {
		return PIIResult{Detected: true, Kind: PIIKindPhone}
	}
	if emailPattern.MatchString(text) {
		return PIIResult{Detected: true, Kind: PIIKindEmail}
	}
	if accountPattern.MatchString(text) {
		return PIIResult{Detected: true, Kind: PIIKindAccount}
	}
	return PIIResult{}
}

// DetectInvestmentAdvice reports whether the utterance asks for investment
// recommendations, which the assistant must refuse for compliance.
func DetectInvestmentAdvice(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range investmentAdvicePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// RedactPII masks detected patterns so the raw values never reach the stored
// history. Phone redaction runs before account redaction so a mobile number is
// not half-eaten by the account mask.
func RedactPII(text string) string {
	out := emailPattern.ReplaceAllString(text, "[REDACTED_EMAIL]")
	out = phonePattern.ReplaceAllString(out, "[REDACTED_PHONE]")
	out = accountPattern.ReplaceAllString(out, "[REDACTED_ACCOUNT]")
	return out
}
