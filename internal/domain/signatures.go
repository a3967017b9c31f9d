package domain

import "regexp"

// WordPressSignatures lists the error pages WordPress serves with a 2xx status.
// Order matters: the first match decides the reported message.
func WordPressSignatures() []SignaturePattern {
	return []SignaturePattern{
		{Pattern: regexp.MustCompile(`(?i)error establishing a database connection`), Message: "Database connection error"},
		{Pattern: regexp.MustCompile(`(?i)briefly unavailable for scheduled maintenance`), Message: "Maintenance mode detected"},
		{Pattern: regexp.MustCompile(`(?i)fatal error`), Message: "WordPress fatal error"},
	}
}

// MatchSignature returns the first pattern matching body.
func MatchSignature(body string, sigs []SignaturePattern) (SignaturePattern, bool) {
	for _, s := range sigs {
		if s.Pattern != nil && s.Pattern.MatchString(body) {
			return s, true
		}
	}
	return SignaturePattern{}, false
}
