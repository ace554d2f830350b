package booking

import (
	"math/rand"
	"regexp"
	"strings"
)

// CodePattern is the wire format of a booking code, e.g. "NL-A742".
var CodePattern = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{3,4}$`)

const (
	codeLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeAlphanum  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeDraws  = 100
	codeSuffixLen = 3
)

// GenerateBookingCode samples codes until one is absent from existing. It
// fails with a generationExhausted error after a bounded number of draws;
// callers treat that as a rare, retryable condition rather than a crash.
func GenerateBookingCode(existing map[string]struct{}) (string, error) {
	for attempt := 0; attempt < maxCodeDraws; attempt++ {
		var sb strings.Builder
		sb.WriteByte(codeLetters[rand.Intn(len(codeLetters))])
		sb.WriteByte(codeLetters[rand.Intn(len(codeLetters))])
		sb.WriteByte('-')
		for i := 0; i < codeSuffixLen; i++ {
			sb.WriteByte(codeAlphanum[rand.Intn(len(codeAlphanum))])
		}
		code := sb.String()
		if _, taken := existing[code]; !taken {
			return code, nil
		}
	}
	return "", NewGenerationExhaustedError("could not issue a unique booking code")
}

// ExtractBookingCode pulls the first booking-code-shaped token out of free text.
func ExtractBookingCode(text string) string {
	token := regexp.MustCompile(`[A-Za-z]{2}-[A-Za-z0-9]{3,4}`).FindString(text)
	if token == "" {
		return ""
	}
	code := strings.ToUpper(token)
	if !CodePattern.MatchString(code) {
		return ""
	}
	return code
}
