package domain

import "strings"

// NormalizePhone strips non-digit characters from the local part and
// concatenates the country prefix, yielding the full international form the
// gateway expects. A local part already starting with the prefix is kept
// as-is once stripped.
func NormalizePhone(countryPrefix, local string) string {
	digits := keepDigits(local)
	prefix := keepDigits(countryPrefix)
	if prefix == "" {
		return digits
	}
	if strings.HasPrefix(digits, prefix) {
		return digits
	}
	// drop a leading trunk zero before prefixing
	digits = strings.TrimPrefix(digits, "0")
	return prefix + digits
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
