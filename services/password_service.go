package services

import (
	"regexp"
	"unicode"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)
)

// ValidatePassword checks the registration password policy: at least 8
// characters with an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return NewFieldError("password", "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	if !hasUpper || !hasLower || !hasNumber {
		return NewFieldError("password", "password must contain uppercase and lowercase letters and include a number")
	}
	return nil
}

// ValidateUsername checks the username policy: at least 6 characters of
// letters, numbers and underscores.
func ValidateUsername(username string) error {
	if len(username) < 6 || !usernameRegex.MatchString(username) {
		return NewFieldError("username", "username must be at least 6 characters long and contain only letters, numbers and underscores")
	}
	return nil
}

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return NewFieldError("email", "invalid email format")
	}
	return nil
}
