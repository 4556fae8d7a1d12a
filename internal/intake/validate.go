package intake

import (
	"regexp"
	"strings"
)

// RequiredFields lists the fields that must be present and non-blank, in
// the order their problems are reported.
var RequiredFields = []string{
	FieldFullName, FieldPhone, FieldEmail, FieldCity,
	FieldBedrooms, FieldBathrooms, FieldSquareFootage,
	FieldServiceType, FieldCleanDate, FieldSource,
}

const (
	msgInvalidEmail = "Invalid email address"
	msgShortPhone   = "Phone number must be at least 10 digits"
	minPhoneDigits  = 10
)

// emailPattern wants non-blank runs around '@' and a dot.  Blank covers the
// same set as isFormSpace.
var emailPattern = regexp.MustCompile(
	`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Validate returns every problem with form in a stable order.  An empty
// result means the form may be persisted.
func Validate(form Form) []string {
	var problems []string

	for _, field := range RequiredFields {
		if !form.has(field) {
			problems = append(problems, MissingFieldMessage(field))
		}
	}

	if email := form.Get(FieldEmail); email != "" && !emailPattern.MatchString(email) {
		problems = append(problems, msgInvalidEmail)
	}

	if phone := form.Get(FieldPhone); phone != "" && countDigits(phone) < minPhoneDigits {
		problems = append(problems, msgShortPhone)
	}

	return problems
}

// MissingFieldMessage formats the problem reported for an absent field.
// Only the first underscore becomes a space ("square_footage" -> "square footage").
func MissingFieldMessage(field string) string {
	return "Missing required field: " + strings.Replace(field, "_", " ", 1)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
