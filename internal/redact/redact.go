// Package redact scrubs sensitive values from strings before they are logged.
// Error messages from the database driver and the auth layer can carry
// connection strings, phone numbers, tokens and SQL text; none of that should
// reach a log line or a response body.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted values.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedPhonePlaceholder      = "[REDACTED_PHONE]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Order matters: DSNs before hosts and paths, JWTs before generic keys,
// phones last so digits inside earlier matches are already gone.
var rules = []rule{
	{
		re:   regexp.MustCompile(`(?i)\b(postgres|postgresql|mysql|redis)://[^@\s]+@`),
		repl: RedactedCredentialPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s,]{3,}['"]?`),
		repl: RedactedCredentialPlaceholder,
	},
	{
		re:   regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		repl: RedactedJWTPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9_\-.~+/]{8,}=*`),
		repl: "${1} " + RedactedKeyPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(jwt[_-]?secret|secret|api[_-]?key|refresh[_-]?token|token)(\s*[=:]\s*)['"]?[A-Za-z0-9_\-.~+/]{8,}['"]?`),
		repl: RedactedKeyPlaceholder,
	},
	{
		re:   regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		repl: RedactedStackPlaceholder,
	},
	{
		re: regexp.MustCompile(
			`(?is)\b(SELECT|INSERT\s+INTO|UPDATE|DELETE\s+FROM)\b.*?(\bFROM\b|\bVALUES\b|\bSET\b|\bWHERE\b).*?(;|$)`,
		),
		repl: RedactedSQLPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(/[\w.-]+){2,}\.(go|sql|conf|yaml|yml|json|env)\b(:\d+)?`),
		repl: RedactedPathPlaceholder,
	},
	{
		// A digit run preceded by a word character or dash is part of an id.
		re:   regexp.MustCompile(`(^|[^\w-])(\+?\d[\d ().-]{5,18}\d)\b`),
		repl: "${1}" + RedactedPhonePlaceholder,
	},
}

// String redacts sensitive information from s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

// Error redacts the message of err. A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Phone masks all but the last two digits of a phone number.
// It is meant for log attributes that must still correlate a request.
func Phone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 2 {
		return RedactedPhonePlaceholder
	}
	masked := make([]rune, len(digits))
	for i := range digits[:len(digits)-2] {
		masked[i] = '*'
	}
	copy(masked[len(digits)-2:], digits[len(digits)-2:])
	return string(masked)
}
