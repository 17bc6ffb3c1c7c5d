package validators

import "strings"

const DefaultCountryCode = "+49"

// NormalizePhone joins a country code and a local number into +<digits>.
// Spaces, dashes, dots and parentheses are dropped, and one leading trunk
// zero is removed from the local part.
func NormalizePhone(countryCode, number string) (string, bool) {
	local := digitsOnly(number)
	if local == "" {
		return "", false
	}

	if strings.HasPrefix(strings.TrimSpace(number), "+") {
		if len(local) < 8 || len(local) > 15 {
			return "", false
		}
		return "+" + local, true
	}

	cc := digitsOnly(countryCode)
	if cc == "" {
		cc = digitsOnly(DefaultCountryCode)
	}

	local = strings.TrimPrefix(local, "0")
	full := cc + local
	if len(local) < 4 || len(full) > 15 {
		return "", false
	}
	return "+" + full, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' || r == '+':
		default:
			return ""
		}
	}
	return b.String()
}
