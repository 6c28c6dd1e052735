package viewmodel

import "github.com/notaspace/notaspace-client/internal/core/domain"

// CodeLength is the number of digits in a one-time login code.
const CodeLength = 4

// SanitizeCode keeps only digits and truncates to CodeLength, the way the code
// field treats typed or pasted input: "12a4" → "124", "123456" → "1234".
func SanitizeCode(input string) string {
	code := domain.DigitsOnly(input)
	if len(code) > CodeLength {
		code = code[:CodeLength]
	}
	return code
}

// CodeComplete reports whether code is ready to be submitted.
func CodeComplete(code string) bool {
	return len(code) == CodeLength && domain.DigitsOnly(code) == code
}

// SanitizePhone strips formatting from a typed phone number.
func SanitizePhone(input string) string {
	return domain.DigitsOnly(input)
}
