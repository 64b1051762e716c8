package validators

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
)

var specialRegex = regexp.MustCompile(`[\\^$*.\[\]{}()?"!@#%&/\\,><':;|_~` + "`" + `=+\-]`)

func PasswordValidator(fl validator.FieldLevel) bool {
	password, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	length := len(password)
	if length < PasswordMinLength || length > PasswordMaxLength {
		return false
	}

	hasSpecial := specialRegex.MatchString(password)
	var hasUpper, hasLower, hasDigit bool

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true

		case unicode.IsLower(ch):
			hasLower = true

		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}

var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {},
}

// USState validates a two-letter US state code (case-insensitive).
func USState(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if code == "" {
		return true
	}

	_, found := usStates[strings.ToUpper(code)]
	return found
}

// NoDupes rejects string slices containing repeated values.
func NoDupes(fl validator.FieldLevel) bool {
	values, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}

	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}
