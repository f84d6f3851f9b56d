package utils

import "strings"

// NormalizePhone brings phone numbers to a dialable format before SMS
// dispatch: bare 10-digit national numbers get the +91 country code, numbers
// already carrying a prefix pass through unchanged.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if len(cleaned) == 10 {
		return "+91" + cleaned
	}
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		return "+" + cleaned
	}
	return cleaned
}
