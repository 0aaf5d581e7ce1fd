package validator

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidationResult collects messages per field, serialized as {"field": ["msg", ...]}.
type ValidationResult map[string][]string

func NewValidationResult() ValidationResult {
	return ValidationResult{}
}

func (v ValidationResult) AddError(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationResult) HasError() bool {
	return len(v) > 0
}

// Required adds "This field is required." when value is blank.
func (v ValidationResult) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "This field is required.")
		return false
	}
	return true
}

func (v ValidationResult) MaxLength(field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		v.AddError(field, "Ensure this field has no more than "+strconv.Itoa(max)+" characters.")
		return false
	}
	return true
}

func (v ValidationResult) Email(field, value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		v.AddError(field, "Enter a valid email address.")
		return false
	}
	return true
}

func (v ValidationResult) MinLength(field, value string, min int) bool {
	if utf8.RuneCountInString(value) < min {
		v.AddError(field, "Ensure this field has at least "+strconv.Itoa(min)+" characters.")
		return false
	}
	return true
}
