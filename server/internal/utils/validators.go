package utils

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrWeakPassword    = errors.New("password must be at least 8 characters and include upper and lower case letters, a number and a symbol")
	ErrInvalidTitle    = errors.New("goal title must be between 1 and 200 characters")
	ErrInvalidTarget   = errors.New("weekly target must be between 1 and 7 days")
	ErrPasswordsDiffer = errors.New("passwords do not match")
)

const maxGoalTitleLength = 200

// IsValidEmail accepts a bare address such as "user@example.com".
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

// IsComplexPassword checks if the password meets the complexity requirements.
func IsComplexPassword(password string) bool {
	var (
		hasMinLen  = len(password) >= 8
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasMinLen && hasUpper && hasLower && hasNumber && hasSpecial
}

// ValidateRegistration checks a sign-up form.
func ValidateRegistration(email, password, confirm string) error {
	if !IsValidEmail(email) {
		return ErrInvalidEmail
	}
	if !IsComplexPassword(password) {
		return ErrWeakPassword
	}
	if password != confirm {
		return ErrPasswordsDiffer
	}
	return nil
}

// ValidateGoal checks a goal's title and weekly target.
func ValidateGoal(title string, targetDays int) error {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxGoalTitleLength {
		return ErrInvalidTitle
	}
	if targetDays < 1 || targetDays > 7 {
		return ErrInvalidTarget
	}
	return nil
}
